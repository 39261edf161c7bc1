package port

import (
	"context"

	"github.com/rl1809/rocket-cart/internal/core/domain"
)

type StockCache interface {
	// GetStock returns the cached stock level, ok is false on a cache miss
	GetStock(ctx context.Context, productID int) (stock domain.Stock, ok bool, err error)

	// SetStock stores the stock level, replacing any cached value
	SetStock(ctx context.Context, stock domain.Stock) error
}
