// internal/domain/cart/store.go
package cart

import (
	"sync"
)

// Subscriber receives the cart snapshot after every mutation, in mutation
// order. Subscribers run synchronously under the store lock and must not
// call back into the store.
type Subscriber func(Cart)

// Store is the authoritative in-process cart for one session. All mutation
// goes through its operations; consumers read snapshots and observe changes
// through Subscribe. The mutex serializes mutations so no operation ever
// observes another mid-flight.
type Store struct {
	mu        sync.Mutex
	sessionID string
	lines     []Line
	total     int64
	subs      []Subscriber
}

// NewStore creates an empty cart store bound to a session identifier
func NewStore(sessionID string) *Store {
	return &Store{sessionID: sessionID}
}

// SessionID returns the session identifier this cart is bound to
func (s *Store) SessionID() string {
	return s.sessionID
}

// AddItem adds a product to the cart. A non-positive quantity is corrected
// to 1 rather than rejected. If a line for the product already exists its
// quantity is incremented; otherwise a new line is appended, preserving
// insertion order. No upper bound is enforced here: stock limits belong to
// the catalog collaborator.
func (s *Store) AddItem(product Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == product.ProductID {
			s.lines[i].Quantity += quantity
			s.commit()
			return
		}
	}

	s.lines = append(s.lines, Line{
		ProductID:   product.ProductID,
		Name:        product.Name,
		Description: product.Description,
		UnitPrice:   product.UnitPrice,
		ImageURL:    product.ImageURL,
		Quantity:    quantity,
	})
	s.commit()
}

// RemoveItem deletes the line with the given product id. Removing an absent
// product is a silent no-op so UI retries stay idempotent.
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.commit()
			return
		}
	}
}

// UpdateQuantity sets the quantity of an existing line. A quantity of zero
// or less removes the line. An absent product id is a silent no-op.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			if quantity <= 0 {
				s.lines = append(s.lines[:i], s.lines[i+1:]...)
			} else {
				s.lines[i].Quantity = quantity
			}
			s.commit()
			return
		}
	}
}

// Clear empties the cart. The session identifier is retained.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.commit()
}

// Restore replaces the cart contents with lines loaded from storage.
// Invariants are re-established on the way in: lines without a positive
// quantity are dropped and duplicate product ids are merged.
func (s *Store) Restore(lines []Line) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	for _, line := range lines {
		if line.Quantity < 1 {
			continue
		}
		merged := false
		for i := range s.lines {
			if s.lines[i].ProductID == line.ProductID {
				s.lines[i].Quantity += line.Quantity
				merged = true
				break
			}
		}
		if !merged {
			s.lines = append(s.lines, line)
		}
	}
	s.commit()
}

// Snapshot returns an immutable view of the cart. The returned value is a
// copy; mutating it has no effect on the store.
func (s *Store) Snapshot() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Subscribe registers an observer for cart changes. It returns an
// unsubscribe function.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subs = append(s.subs, fn)
	index := len(s.subs) - 1

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.subs[index] = nil
	}
}

// commit recomputes the total from the lines and notifies subscribers.
// Must be called with the lock held.
func (s *Store) commit() {
	s.total = computeTotal(s.lines)
	snapshot := s.snapshot()
	for _, fn := range s.subs {
		if fn != nil {
			fn(snapshot)
		}
	}
}

// snapshot builds a deep copy of the current state. Must be called with the
// lock held.
func (s *Store) snapshot() Cart {
	lines := make([]Line, len(s.lines))
	copy(lines, s.lines)
	return Cart{
		SessionID: s.sessionID,
		Lines:     lines,
		Total:     s.total,
	}
}
