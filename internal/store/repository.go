package store

import (
	"encoding/json"
	"fmt"

	"github.com/rileyhilliard/tilemon/internal/errors"
	"github.com/rileyhilliard/tilemon/internal/layout"
)

// Repository reads and writes typed values on top of a KV.
// It satisfies layout.Store.
type Repository struct {
	kv KV
}

var _ layout.Store = (*Repository)(nil)

func NewRepository(kv KV) *Repository {
	return &Repository{kv: kv}
}

// LoadEntries returns the saved tile entries, or an empty list when none
// were saved yet.
func (r *Repository) LoadEntries() ([]layout.Entry, error) {
	var entries []layout.Entry
	found, err := r.load(TileConfigsKey, &entries)
	if err != nil || !found || entries == nil {
		return []layout.Entry{}, err
	}
	return entries, nil
}

func (r *Repository) SaveEntries(entries []layout.Entry) error {
	if entries == nil {
		entries = []layout.Entry{}
	}
	return r.save(TileConfigsKey, entries)
}

// LoadDisplay returns the saved display config, or defaults when none was
// saved yet.
func (r *Repository) LoadDisplay() (layout.DisplayConfig, error) {
	d := layout.DefaultDisplayConfig()
	if _, err := r.load(AppConfigKey, &d); err != nil {
		return layout.DefaultDisplayConfig(), err
	}
	return d.Sanitize(), nil
}

func (r *Repository) SaveDisplay(d layout.DisplayConfig) error {
	return r.save(AppConfigKey, d)
}

// Endpoint returns the last address the dashboard connected to, or "".
// The value is stored as a bare string, not JSON.
func (r *Repository) Endpoint() (string, error) {
	v, ok, err := r.kv.Get(EndpointKey)
	if err != nil || !ok {
		return "", err
	}
	return string(v), nil
}

func (r *Repository) SetEndpoint(address string) error {
	return r.kv.Set(EndpointKey, []byte(address))
}

func (r *Repository) load(key string, dst any) (bool, error) {
	v, ok, err := r.kv.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if len(v) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return false, errors.WrapWithCode(err, errors.ErrPersist,
			fmt.Sprintf("Stored '%s' is corrupt", key),
			"Restore it with 'tilemon layout import' or delete the store file to start over")
	}
	return true, nil
}

func (r *Repository) save(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrPersist, fmt.Sprintf("Cannot encode '%s'", key), "")
	}
	return r.kv.Set(key, b)
}
