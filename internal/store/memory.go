package store

import (
	"sync"

	"github.com/rileyhilliard/tilemon/internal/errors"
)

// MemoryKV keeps blobs in a map. Setting FailWrites makes every Set fail
// with that error, for exercising persistence failures.
type MemoryKV struct {
	mu         sync.Mutex
	data       map[string][]byte
	writes     int
	FailWrites error
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryKV) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return errors.WrapWithCode(m.FailWrites, errors.ErrPersist, "Failed to write '"+key+"'", "")
	}
	m.data[key] = append([]byte(nil), value...)
	m.writes++
	return nil
}

// Writes returns how many Set calls succeeded.
func (m *MemoryKV) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *MemoryKV) Close() error { return nil }
