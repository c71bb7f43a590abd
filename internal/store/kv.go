// Package store persists the tile layout as opaque blobs under fixed keys.
//
// KV is the storage primitive: atomic get and set of whole values. Repository
// sits on top and handles the JSON encoding of each key. Two KV backends
// exist: SQLiteKV for real use and MemoryKV for tests and --ephemeral runs.
package store

// Keys written by tilemon. The blob formats under TileConfigsKey and
// AppConfigKey are compatible with layouts exported by the phone app.
const (
	TileConfigsKey = "tile_configs"
	AppConfigKey   = "app_config"
	EndpointKey    = "server_ip"
)

// KV is a key-value store of byte blobs. Set replaces the whole value.
type KV interface {
	// Get returns the value for key. ok is false when the key was never set.
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
	Close() error
}
