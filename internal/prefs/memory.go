package prefs

import (
	"context"
	"sync"
)

// MemoryStore keeps preferences in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]map[string]string)}
}

func (m *MemoryStore) Load(_ context.Context, readerID string) (Preferences, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fromValues(m.values[readerID], Default()), nil
}

func (m *MemoryStore) Save(_ context.Context, readerID string, p Preferences) error {
	if err := p.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[readerID] = p.Values()
	return nil
}

// Get returns the raw stored value for key.
func (m *MemoryStore) Get(_ context.Context, readerID, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[readerID][key]
	return v, ok, nil
}
