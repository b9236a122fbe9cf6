// internal/infrastructure/upstream/client_test.go
package upstream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bedjos/storefront/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &config.Config{}
	cfg.Upstream.BaseURL = serverURL
	cfg.Upstream.Timeout = 5 * time.Second

	return NewClient(cfg, logger)
}

func TestListProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/products", r.URL.Path)
		json.NewEncoder(w).Encode([]Product{
			{ID: "p1", Name: "Mug", Price: 800, Stock: 5},
		})
	}))
	defer server.Close()

	products, err := newTestClient(server.URL).ListProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, int64(800), products[0].Price)
}

func TestPushCartItemPayload(t *testing.T) {
	var payload map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/cart", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	err := newTestClient(server.URL).PushCartItem(context.Background(), "session_1_abc", "p1", 3)

	require.NoError(t, err)
	assert.Equal(t, "p1", payload["product_id"])
	assert.Equal(t, float64(3), payload["quantity"])
	assert.Equal(t, "session_1_abc", payload["session_id"])
}

func TestPullCart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cart/session_1_abc", r.URL.Path)
		json.NewEncoder(w).Encode(RemoteCart{
			Items: []RemoteCartItem{{ID: "item-1", ProductID: "p1", Quantity: 2}},
			Total: 1600,
			Count: 2,
		})
	}))
	defer server.Close()

	cart, err := newTestClient(server.URL).PullCart(context.Background(), "session_1_abc")

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "item-1", cart.Items[0].ID)
	assert.Equal(t, int64(1600), cart.Total)
}

func TestRemoveCartItemPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/cart/session_1_abc/item/item-9", r.URL.Path)
	}))
	defer server.Close()

	err := newTestClient(server.URL).RemoveCartItem(context.Background(), "session_1_abc", "item-9")

	assert.NoError(t, err)
}

func TestCreateOrderCarriesBearerToken(t *testing.T) {
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders", r.URL.Path)
		authHeader = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(OrderConfirmation{OrderID: "order-7"})
	}))
	defer server.Close()

	confirmation, err := newTestClient(server.URL).CreateOrder(context.Background(), "tok", &OrderRequest{
		CustomerName: "Amina",
		Phone:        "0712345678",
		Total:        5000,
	})

	require.NoError(t, err)
	assert.Equal(t, "order-7", confirmation.OrderID)
	assert.Equal(t, "Bearer tok", authHeader)
}

func TestNon2xxBecomesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "insufficient stock"})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).CreateOrder(context.Background(), "", &OrderRequest{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "insufficient stock", apiErr.Message)
}

func TestNon2xxWithoutBodyUsesStatusText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).PullCart(context.Background(), "session_1_abc")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, http.StatusText(http.StatusServiceUnavailable), apiErr.Message)
}

func TestUnreachableUpstream(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")

	_, err := client.ListProducts(context.Background())

	assert.Error(t, err)
}
