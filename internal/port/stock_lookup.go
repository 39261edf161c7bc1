package port

import (
	"context"

	"github.com/rl1809/rocket-cart/internal/core/domain"
)

// StockLookup is the read side of the remote stock service. Implementations
// must not cache: every call reflects the service's current state.
type StockLookup interface {
	GetStock(ctx context.Context, productID int) (domain.Stock, error)

	// GetProduct returns metadata only, Amount is left zero
	GetProduct(ctx context.Context, productID int) (domain.Product, error)
}
