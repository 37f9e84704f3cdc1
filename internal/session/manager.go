package session

import (
	"sync"

	"readstudy/internal/volume"
)

// Manager hands out one Cache per session token. Caches are created on first
// use and dropped on logout, so no volume outlives the session that loaded
// it.
type Manager struct {
	mu      sync.Mutex
	library volume.Library
	caches  map[string]*Cache
}

// NewManager returns a Manager backed by library.
func NewManager(library volume.Library) *Manager {
	return &Manager{
		library: library,
		caches:  make(map[string]*Cache),
	}
}

// Cache returns the cache owned by token, creating it when absent.
func (m *Manager) Cache(token string) *Cache {
	m.mu.Lock()
	defer m.mu.Unlock()
	cache, ok := m.caches[token]
	if !ok {
		cache = NewCache(m.library)
		m.caches[token] = cache
	}
	return cache
}

// Drop releases the cache owned by token along with its resident volume.
func (m *Manager) Drop(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.caches, token)
}

// Len reports how many session caches are live.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.caches)
}
