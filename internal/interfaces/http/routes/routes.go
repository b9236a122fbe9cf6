// internal/interfaces/http/routes/routes.go
package routes

import (
	"context"
	"time"

	"github.com/bedjos/storefront/internal/config"
	"github.com/bedjos/storefront/internal/domain/auth"
	"github.com/bedjos/storefront/internal/domain/cart"
	"github.com/bedjos/storefront/internal/domain/catalog"
	"github.com/bedjos/storefront/internal/domain/checkout"
	"github.com/bedjos/storefront/internal/domain/contact"
	"github.com/bedjos/storefront/internal/infrastructure/storage"
	"github.com/bedjos/storefront/internal/infrastructure/upstream"
	"github.com/bedjos/storefront/internal/interfaces/http/handlers"
	"github.com/bedjos/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SetupRoutes wires the storefront surface. Domain services are built here
// once and shared by every request.
func SetupRoutes(rg *gin.RouterGroup, cfg *config.Config, logger *logrus.Logger, kv storage.KV, client *upstream.Client) {
	tokens := auth.NewTokenStore(kv, logger)

	adapter := cart.NewPersistenceAdapter(kv, logger)
	if cfg.Cart.RemoteSync {
		// Remote reconciliation is gated on the session's authentication
		// state: shopping sessions (anonymous or customer) sync, admin
		// sessions stay local
		adapter.EnableRemote(client, func(sessionID string) bool {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			return !tokens.State(ctx, sessionID).IsAdmin()
		})
	}

	carts := cart.NewManager(adapter)
	catalogService := catalog.NewService(client, logger)
	checkoutService := checkout.NewService(client, logger)
	contactService := contact.NewService(client)

	// Session identity exists only where state is per-browser. Catalog
	// browsing and contact stay cookieless; the first cart, auth or payment
	// request mints the identifier.
	sessioned := []gin.HandlerFunc{
		middleware.Session(cfg, logger),
		middleware.AuthState(tokens),
	}

	setupProductRoutes(rg, catalogService)
	setupCartRoutes(rg, sessioned, carts, catalogService, checkoutService)
	setupAuthRoutes(rg, sessioned, client, tokens, carts, logger)
	setupContactRoutes(rg, contactService)
	setupPaymentRoutes(rg, sessioned, client)
	setupAdminRoutes(rg, sessioned, client, contactService)
}

func setupProductRoutes(rg *gin.RouterGroup, catalogService *catalog.Service) {
	productHandler := handlers.NewProductHandler(catalogService)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)
	}
}

func setupCartRoutes(rg *gin.RouterGroup, sessioned []gin.HandlerFunc, carts *cart.Manager, catalogService *catalog.Service, checkoutService *checkout.Service) {
	cartHandler := handlers.NewCartHandler(carts, catalogService)
	checkoutHandler := handlers.NewCheckoutHandler(carts, checkoutService)

	cartGroup := rg.Group("/cart", sessioned...)
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.GET("/count", cartHandler.GetCartCount)
		cartGroup.POST("/items", cartHandler.AddToCart)
		cartGroup.PUT("/items/:id", cartHandler.UpdateCartItem)
		cartGroup.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cartGroup.DELETE("", cartHandler.ClearCart)
	}

	checkoutGroup := rg.Group("/checkout", sessioned...)
	checkoutGroup.POST("", checkoutHandler.PlaceOrder)
}

func setupAuthRoutes(rg *gin.RouterGroup, sessioned []gin.HandlerFunc, client *upstream.Client, tokens *auth.TokenStore, carts *cart.Manager, logger *logrus.Logger) {
	authHandler := handlers.NewAuthHandler(client, tokens, carts, logger)

	authGroup := rg.Group("/auth", sessioned...)
	{
		authGroup.POST("/customer/signup", authHandler.CustomerSignup)
		authGroup.POST("/customer/login", authHandler.CustomerLogin)
		authGroup.POST("/admin/login", authHandler.AdminLogin)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.GET("/state", authHandler.GetState)
	}
}

func setupContactRoutes(rg *gin.RouterGroup, contactService *contact.Service) {
	contactHandler := handlers.NewContactHandler(contactService)

	rg.POST("/contact", contactHandler.SendMessage)
}

func setupPaymentRoutes(rg *gin.RouterGroup, sessioned []gin.HandlerFunc, client *upstream.Client) {
	paymentHandler := handlers.NewPaymentHandler(client)

	payments := rg.Group("/payments", sessioned...)
	{
		payments.POST("/mpesa", paymentHandler.InitiateMpesa)
		payments.GET("/verify/:reference", paymentHandler.VerifyPayment)
	}
}

func setupAdminRoutes(rg *gin.RouterGroup, sessioned []gin.HandlerFunc, client *upstream.Client, contactService *contact.Service) {
	adminHandler := handlers.NewAdminHandler(client, contactService)

	admin := rg.Group("/admin", sessioned...)
	admin.Use(middleware.RequireAdmin())
	{
		products := admin.Group("/products")
		{
			products.GET("", adminHandler.ListProducts)
			products.POST("", adminHandler.CreateProduct)
			products.PUT("/:id", adminHandler.UpdateProduct)
			products.DELETE("/:id", adminHandler.DeleteProduct)
		}

		orders := admin.Group("/orders")
		{
			orders.GET("", adminHandler.ListOrders)
			orders.PUT("/:id/status", adminHandler.UpdateOrderStatus)
		}

		admin.GET("/messages", adminHandler.ListMessages)
		admin.GET("/stats", adminHandler.GetStats)
	}
}
