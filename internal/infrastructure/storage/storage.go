// internal/infrastructure/storage/storage.go
package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/bedjos/storefront/internal/config"
)

// ErrNotFound is returned when a key has no stored value
var ErrNotFound = errors.New("storage: key not found")

// KV is the durable client storage contract: string keys to string-serialized
// values. Implementations must report missing keys as ErrNotFound and treat
// corrupt values as a caller concern (callers handle malformed payloads as
// absent).
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open creates the KV implementation selected by configuration
func Open(cfg *config.Config) (KV, error) {
	switch cfg.Storage.Driver {
	case "redis":
		return NewRedis(cfg)
	case "sqlite":
		return NewSQLite(cfg.Storage.SQLitePath)
	default:
		return NewMemory(), nil
	}
}

// Memory is an in-process KV used in tests and as a last-resort fallback.
// Losing it on restart only costs cross-session durability, never in-memory
// cart correctness.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *Memory) Close() error {
	return nil
}
