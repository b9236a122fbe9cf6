// internal/interfaces/http/handlers/payment.go
package handlers

import (
	"net/http"

	"github.com/bedjos/storefront/internal/infrastructure/upstream"
	"github.com/bedjos/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// PaymentHandler proxies payment operations to the upstream API. The
// payment protocol itself lives entirely upstream.
type PaymentHandler struct {
	client *upstream.Client
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(client *upstream.Client) *PaymentHandler {
	return &PaymentHandler{client: client}
}

// MpesaRequest represents an M-Pesa STK push request
type MpesaRequest struct {
	Phone  string `json:"phone" binding:"required"`
	Amount int64  `json:"amount" binding:"required"`
}

// InitiateMpesa handles POST /payments/mpesa
func (h *PaymentHandler) InitiateMpesa(c *gin.Context) {
	var req MpesaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	state := middleware.GetAuthState(c)
	resp, err := h.client.InitiateMpesaPayment(c.Request.Context(), state.Token, req.Phone, req.Amount)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to initiate payment",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment initiated",
		"data":    resp,
	})
}

// VerifyPayment handles GET /payments/verify/:reference
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	resp, err := h.client.VerifyPayment(c.Request.Context(), c.Param("reference"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to verify payment",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment status retrieved",
		"data":    resp,
	})
}
