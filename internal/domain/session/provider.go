// internal/domain/session/provider.go
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Storage is the durable slot a session identifier lives in. For browser
// clients this is a cookie; embedded callers back it with the local
// key-value store.
type Storage interface {
	Load(ctx context.Context) (string, bool)
	Store(ctx context.Context, id string) error
}

// Provider produces and persists the stable anonymous session identifier
// that correlates a browser with its cart before or without login. The last
// issued identifier is kept in memory so repeated calls stay idempotent even
// while storage refuses writes.
type Provider struct {
	storage Storage
	logger  *logrus.Logger

	mu sync.Mutex
	id string
}

// NewProvider creates a session identity provider over the given storage
func NewProvider(storage Storage, logger *logrus.Logger) *Provider {
	return &Provider{storage: storage, logger: logger}
}

// GetOrCreate returns the persisted session identifier, generating and
// persisting a new one if none exists. The operation is total: a storage
// failure is logged and the generated identifier is held in memory, so every
// subsequent call returns the same value, costing only cross-restart
// continuity.
func (p *Provider) GetOrCreate(ctx context.Context) string {
	if id, ok := p.storage.Load(ctx); ok && id != "" {
		return id
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.id != "" {
		return p.id
	}

	id := NewID()
	if err := p.storage.Store(ctx, id); err != nil {
		p.logger.WithError(err).Warn("Session identifier not persisted, continuing in memory")
	}
	p.id = id
	return id
}

// Reset discards the current identifier and issues a fresh one. This is the
// only way an identifier is ever invalidated.
func (p *Provider) Reset(ctx context.Context) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := NewID()
	if err := p.storage.Store(ctx, id); err != nil {
		p.logger.WithError(err).Warn("Session identifier not persisted, continuing in memory")
	}
	p.id = id
	return id
}

// NewID generates a session identifier. A millisecond timestamp plus a
// random suffix keeps collisions across concurrent tabs and devices
// overwhelmingly improbable.
func NewID() string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), suffix)
}
