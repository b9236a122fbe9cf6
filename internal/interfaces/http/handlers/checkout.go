// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/bedjos/storefront/internal/domain/cart"
	"github.com/bedjos/storefront/internal/domain/checkout"
	"github.com/bedjos/storefront/internal/infrastructure/upstream"
	"github.com/bedjos/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// CheckoutHandler handles order submission
type CheckoutHandler struct {
	carts    *cart.Manager
	checkout *checkout.Service
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(carts *cart.Manager, checkoutService *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{
		carts:    carts,
		checkout: checkoutService,
	}
}

// PlaceOrder handles POST /checkout
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	store := h.carts.Get(c.Request.Context(), middleware.GetSessionID(c))
	state := middleware.GetAuthState(c)

	var req checkout.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	confirmation, err := h.checkout.PlaceOrder(c.Request.Context(), store, state, &req)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Cart is empty",
			})
		case errors.Is(err, checkout.ErrInFlight):
			c.JSON(http.StatusConflict, gin.H{
				"error": "An order is already being placed for this session",
			})
		default:
			var apiErr *upstream.APIError
			if errors.As(err, &apiErr) {
				c.JSON(apiErr.StatusCode, gin.H{
					"error": apiErr.Message,
				})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Order submission failed, your cart has been preserved",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order placed successfully",
		"data":    confirmation,
	})
}
