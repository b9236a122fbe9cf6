// internal/infrastructure/upstream/client.go
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/bedjos/storefront/internal/config"
	"github.com/sirupsen/logrus"
)

// Client talks to the remote commerce API. It reimplements none of the
// server's logic; every method is identifier in, confirmation or error out.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates an upstream API client
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: cfg.Upstream.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Upstream.Timeout,
		},
		logger: logger,
	}
}

// APIError is a non-2xx response from the upstream API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Message)
}

// do executes a request, decoding the JSON response into out when non-nil
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read upstream response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error string `json:"error"`
		}
		message := http.StatusText(resp.StatusCode)
		if json.Unmarshal(data, &errResp) == nil && errResp.Error != "" {
			message = errResp.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode upstream response: %w", err)
		}
	}

	return nil
}

// Health probes the upstream API through its cheapest public endpoint
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/products", "", nil, nil)
}

// Product is a catalog record supplied by the upstream API
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Stock       int    `json:"stock"`
	ImageURL    string `json:"image_url"`
}

// ListProducts retrieves the product catalog
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/products", "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct retrieves a single product
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodGet, "/products/"+id, "", nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// RemoteCartItem is one line of the server-side cart record
type RemoteCartItem struct {
	ID           string `json:"id"`
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	ProductPrice int64  `json:"product_price"`
	ProductImage string `json:"product_image"`
	Quantity     int    `json:"quantity"`
	ItemTotal    int64  `json:"item_total"`
}

// RemoteCart is the server-side cart representation keyed by session id
type RemoteCart struct {
	Items []RemoteCartItem `json:"items"`
	Total int64            `json:"total"`
	Count int              `json:"count"`
}

// PushCartItem records an add-to-cart mutation on the remote cart
func (c *Client) PushCartItem(ctx context.Context, sessionID, productID string, quantity int) error {
	body := map[string]interface{}{
		"product_id": productID,
		"quantity":   quantity,
		"session_id": sessionID,
	}
	return c.do(ctx, http.MethodPost, "/cart", "", body, nil)
}

// PullCart retrieves the remote cart for a session
func (c *Client) PullCart(ctx context.Context, sessionID string) (*RemoteCart, error) {
	var cart RemoteCart
	if err := c.do(ctx, http.MethodGet, "/cart/"+sessionID, "", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// RemoveCartItem deletes one item from the remote cart
func (c *Client) RemoveCartItem(ctx context.Context, sessionID, itemID string) error {
	return c.do(ctx, http.MethodDelete, "/cart/"+sessionID+"/item/"+itemID, "", nil, nil)
}

// ClearRemoteCart deletes the remote cart for a session
func (c *Client) ClearRemoteCart(ctx context.Context, sessionID string) error {
	return c.do(ctx, http.MethodDelete, "/cart/"+sessionID, "", nil, nil)
}

// OrderRequest is the order-creation payload built from a cart snapshot
type OrderRequest struct {
	CustomerName string      `json:"customer_name"`
	Email        string      `json:"email"`
	Phone        string      `json:"phone"`
	Total        int64       `json:"total"`
	SessionID    string      `json:"session_id,omitempty"`
	Items        []OrderItem `json:"items,omitempty"`
}

// OrderItem is one ordered line
type OrderItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
}

// OrderConfirmation is the upstream response to order creation
type OrderConfirmation struct {
	OrderID string `json:"order_id"`
	Message string `json:"message"`
}

// CreateOrder submits an order to the upstream API
func (c *Client) CreateOrder(ctx context.Context, token string, req *OrderRequest) (*OrderConfirmation, error) {
	var confirmation OrderConfirmation
	if err := c.do(ctx, http.MethodPost, "/orders", token, req, &confirmation); err != nil {
		return nil, err
	}
	return &confirmation, nil
}

// TokenResponse is the upstream response to a successful login or signup
type TokenResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// CustomerLogin authenticates a customer and returns the issued token
func (c *Client) CustomerLogin(ctx context.Context, email, password string) (*TokenResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp TokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/customer/login", "", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CustomerSignup registers a customer account
func (c *Client) CustomerSignup(ctx context.Context, fields map[string]string) (*TokenResponse, error) {
	var resp TokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/customer/signup", "", fields, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AdminLogin authenticates an administrator and returns the issued token
func (c *Client) AdminLogin(ctx context.Context, email, password string) (*TokenResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp TokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ContactMessage is an inbound customer message
type ContactMessage struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at,omitempty"`
}

// SendContactMessage submits a contact message
func (c *Client) SendContactMessage(ctx context.Context, msg *ContactMessage) error {
	return c.do(ctx, http.MethodPost, "/contact", "", msg, nil)
}

// ListContactMessages retrieves inbound messages for the admin dashboard
func (c *Client) ListContactMessages(ctx context.Context, adminToken string) ([]ContactMessage, error) {
	var messages []ContactMessage
	if err := c.do(ctx, http.MethodGet, "/admin/messages", adminToken, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// CreateProduct creates a catalog product (admin)
func (c *Client) CreateProduct(ctx context.Context, adminToken string, product *Product) (*Product, error) {
	var created Product
	if err := c.do(ctx, http.MethodPost, "/admin/products", adminToken, product, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct updates a catalog product (admin)
func (c *Client) UpdateProduct(ctx context.Context, adminToken, id string, product *Product) (*Product, error) {
	var updated Product
	if err := c.do(ctx, http.MethodPut, "/admin/products/"+id, adminToken, product, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct deletes a catalog product (admin)
func (c *Client) DeleteProduct(ctx context.Context, adminToken, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/products/"+id, adminToken, nil, nil)
}

// Order is an order record as reported by the upstream API
type Order struct {
	ID           string `json:"id"`
	CustomerName string `json:"customer_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Total        int64  `json:"total"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

// ListOrders retrieves all orders (admin)
func (c *Client) ListOrders(ctx context.Context, adminToken string) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/admin/orders", adminToken, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus updates the status of an order (admin)
func (c *Client) UpdateOrderStatus(ctx context.Context, adminToken, orderID, status string) error {
	body := map[string]string{"status": status}
	return c.do(ctx, http.MethodPut, "/admin/orders/"+orderID+"/status", adminToken, body, nil)
}

// Stats is the admin dashboard summary
type Stats struct {
	TotalProducts int   `json:"total_products"`
	TotalOrders   int   `json:"total_orders"`
	TotalMessages int   `json:"total_messages"`
	Revenue       int64 `json:"revenue"`
}

// GetStats retrieves dashboard statistics (admin)
func (c *Client) GetStats(ctx context.Context, adminToken string) (*Stats, error) {
	var stats Stats
	if err := c.do(ctx, http.MethodGet, "/admin/stats", adminToken, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// PaymentResponse is the upstream response to payment operations
type PaymentResponse struct {
	Reference string `json:"reference,omitempty"`
	Status    string `json:"status,omitempty"`
	Message   string `json:"message,omitempty"`
}

// InitiateMpesaPayment starts an M-Pesa STK push for the given phone and amount
func (c *Client) InitiateMpesaPayment(ctx context.Context, token, phone string, amount int64) (*PaymentResponse, error) {
	body := map[string]interface{}{"phone": phone, "amount": amount}
	var resp PaymentResponse
	if err := c.do(ctx, http.MethodPost, "/payments/mpesa/stk-push", token, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyPayment checks the status of a payment reference
func (c *Client) VerifyPayment(ctx context.Context, reference string) (*PaymentResponse, error) {
	var resp PaymentResponse
	if err := c.do(ctx, http.MethodGet, "/payments/verify/"+reference, "", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
