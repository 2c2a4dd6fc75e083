package credstore

import (
	"context"
	"sync"
)

// MemoryStore keeps the credential in process memory. It does not survive a
// restart and exists for tests and one-shot invocations.
type MemoryStore struct {
	mu         sync.RWMutex
	credential string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(_ context.Context, credential string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credential = credential
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credential = ""
	return nil
}

func (m *MemoryStore) Read(_ context.Context) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.credential, m.credential != ""
}
