// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"sync"

	"github.com/bedjos/storefront/internal/domain/auth"
	"github.com/bedjos/storefront/internal/domain/cart"
	"github.com/bedjos/storefront/internal/infrastructure/upstream"
	"github.com/sirupsen/logrus"
)

var (
	// ErrEmptyCart is returned when checking out with nothing in the cart
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInFlight is returned when a session already has an order submission in progress
	ErrInFlight = errors.New("checkout already in progress")
)

// OrderAPI is the subset of the upstream client checkout uses
type OrderAPI interface {
	CreateOrder(ctx context.Context, token string, req *upstream.OrderRequest) (*upstream.OrderConfirmation, error)
}

// Request carries the customer contact fields for an order
type Request struct {
	CustomerName string `json:"customer_name" binding:"required"`
	Email        string `json:"email"`
	Phone        string `json:"phone" binding:"required"`
}

// Service is the checkout consumer: it turns a cart snapshot into an
// order-creation request against the upstream API. The cart is cleared only
// on confirmed success; on any failure it is left untouched so the customer
// can retry.
type Service struct {
	client OrderAPI
	logger *logrus.Logger

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewService creates a checkout service
func NewService(client OrderAPI, logger *logrus.Logger) *Service {
	return &Service{
		client:   client,
		logger:   logger,
		inFlight: make(map[string]bool),
	}
}

// PlaceOrder submits the cart as an order. Duplicate submissions for the
// same session are refused while one is in flight.
func (s *Service) PlaceOrder(ctx context.Context, store *cart.Store, state auth.State, req *Request) (*upstream.OrderConfirmation, error) {
	snapshot := store.Snapshot()
	if snapshot.IsEmpty() {
		return nil, ErrEmptyCart
	}

	if !s.begin(snapshot.SessionID) {
		return nil, ErrInFlight
	}
	defer s.end(snapshot.SessionID)

	items := make([]upstream.OrderItem, len(snapshot.Lines))
	for i, line := range snapshot.Lines {
		items[i] = upstream.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.UnitPrice,
		}
	}

	confirmation, err := s.client.CreateOrder(ctx, state.Token, &upstream.OrderRequest{
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Phone:        req.Phone,
		Total:        snapshot.Total,
		SessionID:    snapshot.SessionID,
		Items:        items,
	})
	if err != nil {
		// The cart is deliberately untouched on failure
		s.logger.WithError(err).WithField("session_id", snapshot.SessionID).
			Warn("Order submission failed, cart preserved")
		return nil, err
	}

	store.Clear()

	s.logger.WithFields(logrus.Fields{
		"session_id": snapshot.SessionID,
		"order_id":   confirmation.OrderID,
		"total":      snapshot.Total,
	}).Info("Order placed")

	return confirmation, nil
}

func (s *Service) begin(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[sessionID] {
		return false
	}
	s.inFlight[sessionID] = true
	return true
}

func (s *Service) end(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, sessionID)
}
