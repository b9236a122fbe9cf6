// cmd/storefront/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bedjos/storefront/internal/config"
	"github.com/bedjos/storefront/internal/infrastructure/storage"
	"github.com/bedjos/storefront/internal/infrastructure/upstream"
	"github.com/bedjos/storefront/internal/interfaces/http"
	"github.com/bedjos/storefront/internal/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg := logger.New(cfg)
	logg.Infof("Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	// Open durable client storage
	kv, err := storage.Open(cfg)
	if err != nil {
		logg.Fatalf("Failed to open durable storage: %v", err)
	}
	defer kv.Close()

	// Upstream commerce API client
	client := upstream.NewClient(cfg, logg)

	// Create and start HTTP server
	server := http.NewServer(cfg, logg, kv, client)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logg.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logg.Info("Shutting down gracefully...")

	// Give server 30 seconds to shutdown gracefully
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logg.Errorf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	logg.Info("Server shutdown completed")
}
