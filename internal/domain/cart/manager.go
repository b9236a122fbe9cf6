// internal/domain/cart/manager.go
package cart

import (
	"context"
	"sync"
)

// Manager hands out the single shared Store for each session identifier.
// Stores are created lazily on first use and hydrated through the
// persistence adapter, so a returning session sees its previous cart.
type Manager struct {
	mu      sync.Mutex
	stores  map[string]*Store
	adapter *PersistenceAdapter
}

// NewManager creates a store manager backed by the given adapter
func NewManager(adapter *PersistenceAdapter) *Manager {
	return &Manager{
		stores:  make(map[string]*Store),
		adapter: adapter,
	}
}

// Get returns the store for a session, creating and hydrating it on first
// access
func (m *Manager) Get(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if store, ok := m.stores[sessionID]; ok {
		return store
	}

	store := NewStore(sessionID)
	m.adapter.Attach(ctx, store)
	m.stores[sessionID] = store
	return store
}

// Sync pushes a session's local cart to the remote record
func (m *Manager) Sync(ctx context.Context, sessionID string) {
	m.adapter.SyncRemote(ctx, m.Get(ctx, sessionID))
}
