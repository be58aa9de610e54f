// mock_storage.go - Mock storage implementation for testing
package testutil

import (
	"sync"

	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/storage"
)

// MockStore implements storage.Store with fault injection so tests can
// exercise persistence failure paths.
type MockStore struct {
	mu     sync.RWMutex
	values map[string]string

	// SetErr, GetErr and DeleteErr are returned by the corresponding
	// operation when non-nil.
	SetErr    error
	GetErr    error
	DeleteErr error

	setCalls int
}

// NewMockStore creates an empty mock store.
func NewMockStore() *MockStore {
	return &MockStore{values: make(map[string]string)}
}

func (m *MockStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MockStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalls++
	if m.SetErr != nil {
		return m.SetErr
	}
	m.values[key] = value
	return nil
}

func (m *MockStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.values, key)
	return nil
}

// SetCalls returns how many Set operations were attempted, including
// failed ones.
func (m *MockStore) SetCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.setCalls
}

// Seed places a value directly into the store.
func (m *MockStore) Seed(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Ensure MockStore implements storage.Store
var _ storage.Store = (*MockStore)(nil)
