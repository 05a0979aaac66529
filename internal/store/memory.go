package store

import (
	"context"
	"sync"

	"github.com/ashureev/onboard-assistant/internal/domain"
)

// MemoryStore implements SessionStore with a map. Sessions are copied on the
// way in and out so callers never share state with the store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// NewMemory creates an empty in-memory session store.
func NewMemory() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*domain.Session)}
}

// Get implements SessionStore.
func (m *MemoryStore) Get(_ context.Context, id string) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	return s.Clone(), nil
}

// Put implements SessionStore.
func (m *MemoryStore) Put(_ context.Context, session *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[session.ID] = session.Clone()
	return nil
}

// Len returns the number of known sessions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Ping implements SessionStore.
func (m *MemoryStore) Ping(_ context.Context) error { return nil }

// Close implements SessionStore.
func (m *MemoryStore) Close() error { return nil }
