package port

import (
	"context"

	"github.com/rl1809/rocket-cart/internal/core/domain"
)

type CatalogRepository interface {
	// GetStock retrieves the inventory row for a product, nil if unknown
	GetStock(ctx context.Context, productID int) (*domain.Stock, error)

	// GetProduct retrieves product metadata, nil if unknown
	GetProduct(ctx context.Context, productID int) (*domain.Product, error)

	// UpdateStock sets the stock level with version check for optimistic locking
	UpdateStock(ctx context.Context, stock domain.Stock) error
}
