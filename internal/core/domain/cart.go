package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrInvalidCart = errors.New("invalid cart")

// Cart is the ordered list of products, in the order they were first added.
//
// Cart values are treated as immutable: every With*/Without helper returns a
// new slice and leaves the receiver and its entries untouched.
type Cart []Product

func (c Cart) Find(productID int) (Product, bool) {
	for _, p := range c {
		if p.ID == productID {
			return p, true
		}
	}
	return Product{}, false
}

// Amount returns the quantity held for productID, 0 when absent.
func (c Cart) Amount(productID int) int {
	p, ok := c.Find(productID)
	if !ok {
		return 0
	}
	return p.Amount
}

func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// WithAdded appends p as a new entry.
func (c Cart) WithAdded(p Product) Cart {
	out := make(Cart, 0, len(c)+1)
	out = append(out, c...)
	return append(out, p)
}

// WithAmount sets the amount of the entry for productID. Other entries are
// copied as-is.
func (c Cart) WithAmount(productID, amount int) Cart {
	out := make(Cart, len(c))
	for i, p := range c {
		if p.ID == productID {
			p.Amount = amount
		}
		out[i] = p
	}
	return out
}

func (c Cart) Without(productID int) Cart {
	out := make(Cart, 0, len(c))
	for _, p := range c {
		if p.ID != productID {
			out = append(out, p)
		}
	}
	return out
}

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range c {
		total = total.Add(p.Subtotal())
	}
	return total
}

// ItemCount is the number of distinct products.
func (c Cart) ItemCount() int {
	return len(c)
}

// Validate checks that ids are unique and every amount is at least 1.
func (c Cart) Validate() error {
	seen := make(map[int]struct{}, len(c))
	for _, p := range c {
		if p.Amount < 1 {
			return fmt.Errorf("%w: product %d has amount %d", ErrInvalidCart, p.ID, p.Amount)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate product %d", ErrInvalidCart, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}
