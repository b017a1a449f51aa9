package session

import (
	"context"
	"sync"
)

// InMemoryStore is a mutex-guarded map-backed Store, suitable for tests &
// single-process deployments.
type InMemoryStore struct {
	mutex    sync.Mutex
	sessions map[string][]byte
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		sessions: make(map[string][]byte),
	}
}

// SetData stores value under key, overwriting any existing value.
func (m *InMemoryStore) SetData(_ context.Context, key string, value []byte) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sessions[key] = value
	return nil
}

// GetData returns the value stored under key, or ErrKeyNotFound.
func (m *InMemoryStore) GetData(_ context.Context, key string) ([]byte, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	v, ok := m.sessions[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return v, nil
}

// RemoveData deletes the value stored under key; removing an absent key is a
// no-op.
func (m *InMemoryStore) RemoveData(_ context.Context, key string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.sessions, key)
	return nil
}

// Len returns the number of stored records.
func (m *InMemoryStore) Len() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.sessions)
}
