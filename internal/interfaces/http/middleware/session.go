// internal/interfaces/http/middleware/session.go
package middleware

import (
	"context"

	"github.com/bedjos/storefront/internal/config"
	"github.com/bedjos/storefront/internal/domain/session"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const sessionContextKey = "session_id"

// Session resolves the browser's session identifier. The cookie is the
// durable storage slot: a request without one gets a freshly generated
// identifier and the cookie set, so every subsequent request from that
// browser carries the same id.
func Session(cfg *config.Config, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		provider := session.NewProvider(&cookieStorage{ctx: c, cfg: cfg}, logger)
		c.Set(sessionContextKey, provider.GetOrCreate(c.Request.Context()))
		c.Next()
	}
}

// GetSessionID extracts the session identifier from gin context
func GetSessionID(c *gin.Context) string {
	id, exists := c.Get(sessionContextKey)
	if !exists {
		return ""
	}
	return id.(string)
}

// cookieStorage adapts the request/response cookie pair to the session
// provider's storage contract
type cookieStorage struct {
	ctx *gin.Context
	cfg *config.Config
}

func (s *cookieStorage) Load(_ context.Context) (string, bool) {
	id, err := s.ctx.Cookie(s.cfg.Cart.SessionCookie)
	return id, err == nil && id != ""
}

func (s *cookieStorage) Store(_ context.Context, id string) error {
	s.ctx.SetCookie(s.cfg.Cart.SessionCookie, id, s.cfg.Cart.CookieMaxAge, "/", "", false, true)
	return nil
}
