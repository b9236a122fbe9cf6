// internal/domain/catalog/service.go
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/bedjos/storefront/internal/domain/cart"
	"github.com/bedjos/storefront/internal/infrastructure/upstream"
	"github.com/sirupsen/logrus"
)

// ErrOutOfStock is returned when adding a product whose reported stock is zero
var ErrOutOfStock = errors.New("product is out of stock")

// ProductAPI is the subset of the upstream client the catalog uses
type ProductAPI interface {
	ListProducts(ctx context.Context) ([]upstream.Product, error)
	GetProduct(ctx context.Context, id string) (*upstream.Product, error)
}

// Service is the product listing consumer: it reads the catalog from the
// upstream API and feeds fully populated product records into the cart.
type Service struct {
	client ProductAPI
	logger *logrus.Logger
}

// NewService creates a catalog service
func NewService(client ProductAPI, logger *logrus.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// ListProducts retrieves the catalog
func (s *Service) ListProducts(ctx context.Context) ([]cart.Product, error) {
	remote, err := s.client.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	products := make([]cart.Product, len(remote))
	for i, p := range remote {
		products[i] = toProduct(p)
	}
	return products, nil
}

// GetProduct retrieves a single product
func (s *Service) GetProduct(ctx context.Context, id string) (*cart.Product, error) {
	remote, err := s.client.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	product := toProduct(*remote)
	return &product, nil
}

// AddToCart looks up a product and adds it to the session's cart. Products
// with zero reported stock are refused; any further stock enforcement stays
// with the upstream API.
func (s *Service) AddToCart(ctx context.Context, store *cart.Store, productID string, quantity int) (*cart.Product, error) {
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.Stock == 0 {
		return nil, ErrOutOfStock
	}

	store.AddItem(*product, quantity)
	return product, nil
}

func toProduct(p upstream.Product) cart.Product {
	return cart.Product{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		UnitPrice:   p.Price,
		ImageURL:    p.ImageURL,
		Stock:       p.Stock,
	}
}
