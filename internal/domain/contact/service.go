// internal/domain/contact/service.go
package contact

import (
	"context"
	"fmt"

	"github.com/bedjos/storefront/internal/infrastructure/upstream"
)

// MessageAPI is the subset of the upstream client used for contact messages
type MessageAPI interface {
	SendContactMessage(ctx context.Context, msg *upstream.ContactMessage) error
	ListContactMessages(ctx context.Context, adminToken string) ([]upstream.ContactMessage, error)
}

// Service forwards contact messages to the business and lists them for the
// admin dashboard
type Service struct {
	client MessageAPI
}

// NewService creates a contact service
func NewService(client MessageAPI) *Service {
	return &Service{client: client}
}

// Send submits a contact message
func (s *Service) Send(ctx context.Context, msg *upstream.ContactMessage) error {
	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		return fmt.Errorf("name, email and message are required")
	}
	return s.client.SendContactMessage(ctx, msg)
}

// Messages lists inbound messages for the admin dashboard
func (s *Service) Messages(ctx context.Context, adminToken string) ([]upstream.ContactMessage, error) {
	return s.client.ListContactMessages(ctx, adminToken)
}
