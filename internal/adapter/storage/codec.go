package storage

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/rl1809/rocket-cart/internal/core/domain"
)

// decodeCart reads a serialized cart. Empty input and JSON null both mean an
// empty cart.
func decodeCart(data []byte) (domain.Cart, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return domain.Cart{}, nil
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, errors.Wrap(err, "decode cart")
	}
	if cart == nil {
		return domain.Cart{}, nil
	}
	return cart, nil
}

func encodeCart(cart domain.Cart) ([]byte, error) {
	if cart == nil {
		cart = domain.Cart{}
	}
	data, err := json.Marshal(cart)
	return data, errors.Wrap(err, "encode cart")
}
