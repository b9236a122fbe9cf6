// internal/interfaces/http/handlers/contact.go
package handlers

import (
	"net/http"

	"github.com/bedjos/storefront/internal/domain/contact"
	"github.com/bedjos/storefront/internal/infrastructure/upstream"
	"github.com/gin-gonic/gin"
)

// ContactHandler handles contact message endpoints
type ContactHandler struct {
	contact *contact.Service
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService *contact.Service) *ContactHandler {
	return &ContactHandler{contact: contactService}
}

// ContactRequest represents a contact message submission
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" binding:"required"`
}

// SendMessage handles POST /contact
func (h *ContactHandler) SendMessage(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	err := h.contact.Send(c.Request.Context(), &upstream.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to send message",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Message sent successfully",
	})
}
