// internal/domain/contact/service_test.go
package contact

import (
	"context"
	"testing"

	"github.com/bedjos/storefront/internal/infrastructure/upstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessageAPI struct {
	sent     []*upstream.ContactMessage
	messages []upstream.ContactMessage
}

func (f *fakeMessageAPI) SendContactMessage(_ context.Context, msg *upstream.ContactMessage) error {
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMessageAPI) ListContactMessages(context.Context, string) ([]upstream.ContactMessage, error) {
	return f.messages, nil
}

func TestSend(t *testing.T) {
	api := &fakeMessageAPI{}
	service := NewService(api)

	err := service.Send(context.Background(), &upstream.ContactMessage{
		Name:    "Amina",
		Email:   "amina@example.com",
		Message: "Do you print banners?",
	})

	require.NoError(t, err)
	require.Len(t, api.sent, 1)
	assert.Equal(t, "Amina", api.sent[0].Name)
}

func TestSendRejectsIncompleteMessage(t *testing.T) {
	api := &fakeMessageAPI{}
	service := NewService(api)

	err := service.Send(context.Background(), &upstream.ContactMessage{Name: "Amina"})

	assert.Error(t, err)
	assert.Empty(t, api.sent)
}

func TestMessages(t *testing.T) {
	api := &fakeMessageAPI{messages: []upstream.ContactMessage{
		{ID: "m1", Name: "Amina", Email: "amina@example.com", Message: "Hi"},
	}}
	service := NewService(api)

	messages, err := service.Messages(context.Background(), "admin-token")

	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "m1", messages[0].ID)
}
