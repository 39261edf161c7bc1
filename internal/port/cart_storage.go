package port

import (
	"context"

	"github.com/rl1809/rocket-cart/internal/core/domain"
)

// CartStorage is a single durable slot holding the whole cart.
type CartStorage interface {
	// LoadCart returns the stored cart, an empty cart if the slot is absent
	LoadCart(ctx context.Context) (domain.Cart, error)

	// SaveCart overwrites the slot with the complete cart
	SaveCart(ctx context.Context, cart domain.Cart) error
}
