// internal/interfaces/http/handlers/admin.go
package handlers

import (
	"net/http"

	"github.com/bedjos/storefront/internal/domain/contact"
	"github.com/bedjos/storefront/internal/infrastructure/upstream"
	"github.com/bedjos/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AdminHandler proxies the admin dashboard operations to the upstream API
// using the admin token bound to the session
type AdminHandler struct {
	client  *upstream.Client
	contact *contact.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(client *upstream.Client, contactService *contact.Service) *AdminHandler {
	return &AdminHandler{
		client:  client,
		contact: contactService,
	}
}

// AdminProductRequest represents a product create/update request
type AdminProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required"`
	Stock       int    `json:"stock"`
	ImageURL    string `json:"image_url"`
}

// OrderStatusRequest represents an order status update
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListProducts handles GET /admin/products
func (h *AdminHandler) ListProducts(c *gin.Context) {
	products, err := h.client.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    products,
	})
}

// CreateProduct handles POST /admin/products
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req AdminProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	created, err := h.client.CreateProduct(c.Request.Context(), h.token(c), &upstream.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"data":    created,
	})
}

// UpdateProduct handles PUT /admin/products/:id
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	var req AdminProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	updated, err := h.client.UpdateProduct(c.Request.Context(), h.token(c), c.Param("id"), &upstream.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"data":    updated,
	})
}

// DeleteProduct handles DELETE /admin/products/:id
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	if err := h.client.DeleteProduct(c.Request.Context(), h.token(c), c.Param("id")); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
	})
}

// ListOrders handles GET /admin/orders
func (h *AdminHandler) ListOrders(c *gin.Context) {
	orders, err := h.client.ListOrders(c.Request.Context(), h.token(c))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    orders,
	})
}

// UpdateOrderStatus handles PUT /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	var req OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.client.UpdateOrderStatus(c.Request.Context(), h.token(c), c.Param("id"), req.Status); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to update order status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
	})
}

// ListMessages handles GET /admin/messages
func (h *AdminHandler) ListMessages(c *gin.Context) {
	messages, err := h.contact.Messages(c.Request.Context(), h.token(c))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Messages retrieved successfully",
		"data":    messages,
	})
}

// GetStats handles GET /admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.client.GetStats(c.Request.Context(), h.token(c))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load statistics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Statistics retrieved successfully",
		"data":    stats,
	})
}

func (h *AdminHandler) token(c *gin.Context) string {
	return middleware.GetAuthState(c).Token
}
