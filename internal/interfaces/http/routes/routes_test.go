// internal/interfaces/http/routes/routes_test.go
package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bedjos/storefront/internal/config"
	"github.com/bedjos/storefront/internal/infrastructure/storage"
	"github.com/bedjos/storefront/internal/infrastructure/upstream"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testRouter(upstreamURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Upstream.BaseURL = upstreamURL
	cfg.Upstream.Timeout = 2 * time.Second
	cfg.Cart.SessionCookie = "session_id"
	cfg.Cart.CookieMaxAge = 3600
	cfg.Cart.RemoteSync = false

	logger := newTestLogger()
	router := gin.New()
	SetupRoutes(router.Group("/api/v1"), cfg, logger, storage.NewMemory(), upstream.NewClient(cfg, logger))
	return router
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "session_id" {
			return cookie
		}
	}
	return nil
}

func TestBrowsingCatalogMintsNoSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]upstream.Product{{ID: "p1", Name: "Mug", Price: 800, Stock: 3}})
	}))
	defer server.Close()
	router := testRouter(server.URL)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, sessionCookie(w))
}

func TestCartAccessMintsSession(t *testing.T) {
	router := testRouter("http://localhost:0")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	require.Equal(t, http.StatusOK, w.Code)
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Contains(t, cookie.Value, "session_")
}
