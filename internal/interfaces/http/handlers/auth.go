// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/bedjos/storefront/internal/domain/auth"
	"github.com/bedjos/storefront/internal/domain/cart"
	"github.com/bedjos/storefront/internal/infrastructure/upstream"
	"github.com/bedjos/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles authentication endpoints. Credentials pass straight
// through to the upstream API; only the returned tokens are kept, bound to
// the browser session.
type AuthHandler struct {
	client *upstream.Client
	tokens *auth.TokenStore
	carts  *cart.Manager
	logger *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(client *upstream.Client, tokens *auth.TokenStore, carts *cart.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		client: client,
		tokens: tokens,
		carts:  carts,
		logger: logger,
	}
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignupRequest represents a customer signup request
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
}

// CustomerLogin handles POST /auth/customer/login
func (h *AuthHandler) CustomerLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.client.CustomerLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Login failed",
		})
		return
	}

	h.storeToken(c, resp.Token, false)

	// A cart built before login may never have reached the remote record
	h.carts.Sync(c.Request.Context(), middleware.GetSessionID(c))

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in successfully",
		"data":    gin.H{"state": auth.KindCustomer.String()},
	})
}

// CustomerSignup handles POST /auth/customer/signup
func (h *AuthHandler) CustomerSignup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.client.CustomerSignup(c.Request.Context(), map[string]string{
		"name":     req.Name,
		"email":    req.Email,
		"phone":    req.Phone,
		"password": req.Password,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	if resp.Token != "" {
		h.storeToken(c, resp.Token, false)
		h.carts.Sync(c.Request.Context(), middleware.GetSessionID(c))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Account created successfully",
		"data":    gin.H{"state": auth.KindCustomer.String()},
	})
}

// AdminLogin handles POST /auth/admin/login
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.client.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Login failed",
		})
		return
	}

	h.storeToken(c, resp.Token, true)

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in successfully",
		"data":    gin.H{"state": auth.KindAdmin.String()},
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	if err := h.tokens.Clear(c.Request.Context(), sessionID); err != nil {
		h.logger.WithError(err).WithField("session_id", sessionID).
			Warn("Failed to clear stored tokens")
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
		"data":    gin.H{"state": auth.KindAnonymous.String()},
	})
}

// GetState handles GET /auth/state
func (h *AuthHandler) GetState(c *gin.Context) {
	state := middleware.GetAuthState(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Authentication state retrieved successfully",
		"data":    gin.H{"state": state.Kind.String()},
	})
}

func (h *AuthHandler) storeToken(c *gin.Context, token string, admin bool) {
	sessionID := middleware.GetSessionID(c)
	ctx := c.Request.Context()

	var err error
	if admin {
		err = h.tokens.StoreAdmin(ctx, sessionID, token)
	} else {
		err = h.tokens.StoreCustomer(ctx, sessionID, token)
	}
	if err != nil {
		// The upstream accepted the login; losing the token only means
		// re-authenticating later
		h.logger.WithError(err).WithField("session_id", sessionID).
			Warn("Failed to persist token for session")
	}
}
