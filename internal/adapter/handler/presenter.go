package handler

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/rl1809/rocket-cart/internal/core/service"
	"github.com/rl1809/rocket-cart/internal/port"
)

const (
	msgOutOfStock   = "requested quantity out of stock"
	msgAddFailed    = "error adding product"
	msgRemoveFailed = "error removing product"
	msgUpdateFailed = "error changing product quantity"
)

// CartStore is the subset of service.CartService the presenter drives.
type CartStore interface {
	AddProduct(ctx context.Context, productID int) error
	RemoveProduct(ctx context.Context, productID int) error
	UpdateProductAmount(ctx context.Context, req service.UpdateProductAmount) error
}

// CartPresenter is the UI-facing surface of the cart. Failures are turned into
// user messages on the notifier and never returned.
type CartPresenter struct {
	cart     CartStore
	notifier port.Notifier
	log      logrus.FieldLogger
}

func NewCartPresenter(cart CartStore, notifier port.Notifier, log logrus.FieldLogger) *CartPresenter {
	return &CartPresenter{cart: cart, notifier: notifier, log: log}
}

func (p *CartPresenter) AddProduct(ctx context.Context, productID int) {
	err := p.cart.AddProduct(ctx, productID)
	p.report(err, msgAddFailed)
}

func (p *CartPresenter) RemoveProduct(ctx context.Context, productID int) {
	err := p.cart.RemoveProduct(ctx, productID)
	p.report(err, msgRemoveFailed)
}

func (p *CartPresenter) UpdateProductAmount(ctx context.Context, productID, amount int) {
	err := p.cart.UpdateProductAmount(ctx, service.UpdateProductAmount{
		ProductID: productID,
		Amount:    amount,
	})
	p.report(err, msgUpdateFailed)
}

func (p *CartPresenter) report(err error, fallback string) {
	if err == nil {
		return
	}

	message := fallback
	if errors.Is(err, service.ErrStockExceeded) {
		message = msgOutOfStock
	}

	p.log.WithError(err).WithField("message", message).Debug("notifying user")
	p.notifier.Error(message)
}
