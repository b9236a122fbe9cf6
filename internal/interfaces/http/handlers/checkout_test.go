// internal/interfaces/http/handlers/checkout_test.go
package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/bedjos/storefront/internal/domain/cart"
	"github.com/bedjos/storefront/internal/domain/catalog"
	"github.com/bedjos/storefront/internal/domain/checkout"
	"github.com/bedjos/storefront/internal/infrastructure/storage"
	"github.com/bedjos/storefront/internal/infrastructure/upstream"
	"github.com/bedjos/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOrderAPI answers order submissions with a canned result
type fakeOrderAPI struct {
	err error
}

func (f *fakeOrderAPI) CreateOrder(context.Context, string, *upstream.OrderRequest) (*upstream.OrderConfirmation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &upstream.OrderConfirmation{OrderID: "order-1"}, nil
}

func checkoutTestRouter(orderAPI *fakeOrderAPI) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := newTestLogger()

	carts := cart.NewManager(cart.NewPersistenceAdapter(storage.NewMemory(), logger))
	catalogService := catalog.NewService(&fakeProductAPI{products: map[string]upstream.Product{
		"p1": {ID: "p1", Name: "Branded Mug", Price: 1500, Stock: 10},
	}}, logger)
	checkoutService := checkout.NewService(orderAPI, logger)

	cartHandler := NewCartHandler(carts, catalogService)
	checkoutHandler := NewCheckoutHandler(carts, checkoutService)

	router := gin.New()
	router.Use(middleware.Session(testConfig(), logger))
	router.GET("/cart", cartHandler.GetCart)
	router.POST("/cart/items", cartHandler.AddToCart)
	router.POST("/checkout", checkoutHandler.PlaceOrder)
	return router
}

func validOrder() gin.H {
	return gin.H{
		"customer_name": "Amina",
		"email":         "amina@example.com",
		"phone":         "0712345678",
	}
}

func TestPlaceOrderEndpointClearsCart(t *testing.T) {
	router := checkoutTestRouter(&fakeOrderAPI{})
	doJSON(router, http.MethodPost, "/cart/items", gin.H{"product_id": "p1", "quantity": 2})

	w := doJSON(router, http.MethodPost, "/checkout", validOrder())
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/cart", nil)
	assert.True(t, cartData(t, w).IsEmpty())
}

func TestPlaceOrderEndpointEmptyCart(t *testing.T) {
	router := checkoutTestRouter(&fakeOrderAPI{})

	w := doJSON(router, http.MethodPost, "/checkout", validOrder())

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaceOrderEndpointValidation(t *testing.T) {
	router := checkoutTestRouter(&fakeOrderAPI{})
	doJSON(router, http.MethodPost, "/cart/items", gin.H{"product_id": "p1", "quantity": 1})

	// Missing phone
	w := doJSON(router, http.MethodPost, "/checkout", gin.H{"customer_name": "Amina"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaceOrderEndpointUpstreamFailurePreservesCart(t *testing.T) {
	router := checkoutTestRouter(&fakeOrderAPI{err: errors.New("upstream down")})
	doJSON(router, http.MethodPost, "/cart/items", gin.H{"product_id": "p1", "quantity": 2})

	w := doJSON(router, http.MethodPost, "/checkout", validOrder())
	assert.Equal(t, http.StatusBadGateway, w.Code)

	w = doJSON(router, http.MethodGet, "/cart", nil)
	data := cartData(t, w)
	require.Len(t, data.Lines, 1)
	assert.Equal(t, int64(3000), data.Total)
}

func TestPlaceOrderEndpointMirrorsUpstreamStatus(t *testing.T) {
	router := checkoutTestRouter(&fakeOrderAPI{err: &upstream.APIError{
		StatusCode: http.StatusConflict,
		Message:    "insufficient stock",
	}})
	doJSON(router, http.MethodPost, "/cart/items", gin.H{"product_id": "p1", "quantity": 2})

	w := doJSON(router, http.MethodPost, "/checkout", validOrder())

	assert.Equal(t, http.StatusConflict, w.Code)
}
