// internal/domain/cart/persistence.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/bedjos/storefront/internal/infrastructure/storage"
	"github.com/bedjos/storefront/internal/infrastructure/upstream"
	"github.com/sirupsen/logrus"
)

// RemoteAPI is the subset of the upstream client the adapter uses for
// remote cart reconciliation
type RemoteAPI interface {
	PushCartItem(ctx context.Context, sessionID, productID string, quantity int) error
	PullCart(ctx context.Context, sessionID string) (*upstream.RemoteCart, error)
	RemoveCartItem(ctx context.Context, sessionID, itemID string) error
	ClearRemoteCart(ctx context.Context, sessionID string) error
}

// PersistenceAdapter keeps durable storage, and opportunistically the
// remote cart record, consistent with the store's authoritative state.
// Durability is best effort: every failure here is logged and swallowed,
// never surfaced to cart consumers, and never disturbs in-memory state.
type PersistenceAdapter struct {
	kv      storage.KV
	remote  RemoteAPI
	allowed func(sessionID string) bool
	logger  *logrus.Logger

	mu      sync.Mutex
	itemIDs map[string]map[string]string // session id -> product id -> remote item id

	// pushMu serializes remote delta application so concurrent mutation
	// goroutines never interleave half-applied deltas
	pushMu sync.Mutex
}

const cartKeyPrefix = "cart:session:"

// NewPersistenceAdapter creates an adapter writing through to the given
// durable storage
func NewPersistenceAdapter(kv storage.KV, logger *logrus.Logger) *PersistenceAdapter {
	return &PersistenceAdapter{
		kv:      kv,
		logger:  logger,
		itemIDs: make(map[string]map[string]string),
	}
}

// EnableRemote turns on remote reconciliation. The allowed gate is consulted
// before every remote attempt; it is how the adapter reads authentication
// state without owning it.
func (a *PersistenceAdapter) EnableRemote(remote RemoteAPI, allowed func(sessionID string) bool) {
	a.remote = remote
	a.allowed = allowed
}

func (a *PersistenceAdapter) remoteAllowed(sessionID string) bool {
	return a.remote != nil && (a.allowed == nil || a.allowed(sessionID))
}

// Load reads the persisted cart lines for a session. Missing or malformed
// payloads are treated as an empty cart, not an error.
func (a *PersistenceAdapter) Load(ctx context.Context, sessionID string) []Line {
	data, err := a.kv.Get(ctx, cartKeyPrefix+sessionID)
	if err != nil {
		if err != storage.ErrNotFound {
			a.logger.WithError(err).WithField("session_id", sessionID).
				Warn("Failed to read persisted cart, starting empty")
		}
		return nil
	}

	var cart Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		a.logger.WithError(err).WithField("session_id", sessionID).
			Warn("Persisted cart is malformed, starting empty")
		return nil
	}

	return cart.Lines
}

// Save writes a cart snapshot through to durable storage. Failures are
// logged; the in-memory cart stays correct and the next successful write
// restores durability.
func (a *PersistenceAdapter) Save(cart Cart) {
	data, err := json.Marshal(cart)
	if err != nil {
		a.logger.WithError(err).WithField("session_id", cart.SessionID).
			Error("Failed to serialize cart")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := a.kv.Set(ctx, cartKeyPrefix+cart.SessionID, string(data)); err != nil {
		a.logger.WithError(err).WithField("session_id", cart.SessionID).
			Warn("Failed to persist cart, continuing with in-memory state")
	}
}

// Attach hydrates a freshly created store from storage (pulling the remote
// cart when local storage has nothing) and subscribes for write-through on
// every subsequent mutation.
func (a *PersistenceAdapter) Attach(ctx context.Context, store *Store) {
	sessionID := store.SessionID()

	lines := a.Load(ctx, sessionID)
	if len(lines) > 0 {
		store.Restore(lines)
	} else if a.remoteAllowed(sessionID) {
		if lines = a.pullRemote(ctx, sessionID); len(lines) > 0 {
			store.Restore(lines)
			// The pulled cart must survive a restart even if no further
			// mutation ever triggers the write-through
			a.Save(store.Snapshot())
		}
	}

	prev := store.Snapshot()
	store.Subscribe(func(snapshot Cart) {
		a.Save(snapshot)

		if a.remoteAllowed(sessionID) {
			d := diffLines(prev.Lines, snapshot.Lines)
			go a.pushRemote(sessionID, d)
		}
		prev = snapshot
	})
}

// SyncRemote pushes the full local cart to the remote record. Used after
// login, when a cart built locally becomes eligible for reconciliation.
func (a *PersistenceAdapter) SyncRemote(ctx context.Context, store *Store) {
	sessionID := store.SessionID()
	if !a.remoteAllowed(sessionID) {
		return
	}

	snapshot := store.Snapshot()
	if snapshot.IsEmpty() {
		return
	}

	go a.pushRemote(sessionID, diffLines(nil, snapshot.Lines))
}

// pullRemote fetches the server-side cart for a session, recording remote
// item ids for later removals. Any failure degrades to local-only.
func (a *PersistenceAdapter) pullRemote(ctx context.Context, sessionID string) []Line {
	remote, err := a.remote.PullCart(ctx, sessionID)
	if err != nil {
		a.logger.WithError(err).WithField("session_id", sessionID).
			Debug("Remote cart unavailable, operating locally")
		return nil
	}

	ids := make(map[string]string, len(remote.Items))
	lines := make([]Line, 0, len(remote.Items))
	for _, item := range remote.Items {
		ids[item.ProductID] = item.ID
		lines = append(lines, Line{
			ProductID: item.ProductID,
			Name:      item.ProductName,
			UnitPrice: item.ProductPrice,
			ImageURL:  item.ProductImage,
			Quantity:  item.Quantity,
		})
	}

	a.mu.Lock()
	a.itemIDs[sessionID] = ids
	a.mu.Unlock()

	return lines
}

type lineDelta struct {
	adds    []Line   // new lines, or quantity-increase deltas
	resets  []Line   // lines whose quantity decreased (remote remove + re-add)
	removes []string // product ids deleted from the cart
	cleared bool
}

// diffLines translates a before/after pair of line sequences into the
// remote mutations that reproduce the change
func diffLines(before, after []Line) lineDelta {
	var d lineDelta

	prev := make(map[string]Line, len(before))
	for _, line := range before {
		prev[line.ProductID] = line
	}

	for _, line := range after {
		old, existed := prev[line.ProductID]
		switch {
		case !existed:
			d.adds = append(d.adds, line)
		case line.Quantity > old.Quantity:
			delta := line
			delta.Quantity = line.Quantity - old.Quantity
			d.adds = append(d.adds, delta)
		case line.Quantity < old.Quantity:
			d.resets = append(d.resets, line)
		}
		delete(prev, line.ProductID)
	}

	for productID := range prev {
		d.removes = append(d.removes, productID)
	}

	d.cleared = len(after) == 0 && len(before) > 0
	return d
}

// pushRemote applies a delta to the remote cart, best effort. It runs off
// the mutation path so network latency never blocks cart operations.
func (a *PersistenceAdapter) pushRemote(sessionID string, d lineDelta) {
	a.pushMu.Lock()
	defer a.pushMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if d.cleared {
		if err := a.remote.ClearRemoteCart(ctx, sessionID); err != nil {
			a.logRemoteFailure(sessionID, "clear", err)
		}
		a.mu.Lock()
		delete(a.itemIDs, sessionID)
		a.mu.Unlock()
		return
	}

	for _, productID := range d.removes {
		a.removeRemoteItem(ctx, sessionID, productID)
	}

	for _, line := range d.resets {
		a.removeRemoteItem(ctx, sessionID, line.ProductID)
		if err := a.remote.PushCartItem(ctx, sessionID, line.ProductID, line.Quantity); err != nil {
			a.logRemoteFailure(sessionID, "push", err)
		}
	}

	for _, line := range d.adds {
		if err := a.remote.PushCartItem(ctx, sessionID, line.ProductID, line.Quantity); err != nil {
			a.logRemoteFailure(sessionID, "push", err)
		}
	}

	// Pushed lines get their item ids server-side; re-pull so later
	// removals of those lines can name them
	if len(d.adds) > 0 || len(d.resets) > 0 {
		a.refreshItemIDs(ctx, sessionID)
	}
}

// refreshItemIDs re-learns the remote item id for every line of the
// server-side cart
func (a *PersistenceAdapter) refreshItemIDs(ctx context.Context, sessionID string) {
	remote, err := a.remote.PullCart(ctx, sessionID)
	if err != nil {
		a.logRemoteFailure(sessionID, "pull", err)
		return
	}

	ids := make(map[string]string, len(remote.Items))
	for _, item := range remote.Items {
		ids[item.ProductID] = item.ID
	}

	a.mu.Lock()
	a.itemIDs[sessionID] = ids
	a.mu.Unlock()
}

func (a *PersistenceAdapter) removeRemoteItem(ctx context.Context, sessionID, productID string) {
	a.mu.Lock()
	itemID, ok := a.itemIDs[sessionID][productID]
	a.mu.Unlock()
	if !ok {
		// Never pulled a remote item id for this line; nothing to delete
		return
	}

	if err := a.remote.RemoveCartItem(ctx, sessionID, itemID); err != nil {
		a.logRemoteFailure(sessionID, "remove", err)
		return
	}

	a.mu.Lock()
	delete(a.itemIDs[sessionID], productID)
	a.mu.Unlock()
}

func (a *PersistenceAdapter) logRemoteFailure(sessionID, op string, err error) {
	a.logger.WithError(fmt.Errorf("remote cart %s failed: %w", op, err)).
		WithField("session_id", sessionID).
		Debug("Remote cart sync degraded to local-only")
}
