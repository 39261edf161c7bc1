package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/rl1809/rocket-cart/internal/core/domain"
	"github.com/rl1809/rocket-cart/internal/port"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidStock    = errors.New("invalid stock amount")
)

// StockService is the read path of the stock API: stock levels are served from
// the cache and loaded from the catalog on a miss.
type StockService struct {
	cache port.StockCache
	db    port.CatalogRepository
	log   logrus.FieldLogger
}

func NewStockService(cache port.StockCache, db port.CatalogRepository, log logrus.FieldLogger) *StockService {
	return &StockService{
		cache: cache,
		db:    db,
		log:   log,
	}
}

func (s *StockService) GetStock(ctx context.Context, productID int) (domain.Stock, error) {
	cached, ok, err := s.cache.GetStock(ctx, productID)
	if err != nil {
		s.log.WithError(err).WithField("product_id", productID).Warn("stock cache read failed")
	} else if ok {
		return cached, nil
	}

	stock, err := s.db.GetStock(ctx, productID)
	if err != nil {
		return domain.Stock{}, fmt.Errorf("stock lookup failed: %w", err)
	}
	if stock == nil {
		return domain.Stock{}, ErrProductNotFound
	}

	if err := s.cache.SetStock(ctx, *stock); err != nil {
		s.log.WithError(err).WithField("product_id", productID).Warn("stock cache write failed")
	}

	return *stock, nil
}

func (s *StockService) GetProduct(ctx context.Context, productID int) (domain.Product, error) {
	product, err := s.db.GetProduct(ctx, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product lookup failed: %w", err)
	}
	if product == nil {
		return domain.Product{}, ErrProductNotFound
	}
	return *product, nil
}

// SetStock overwrites the stock level of an existing product and refreshes the
// cache. A failed cache refresh is logged; the cached value then expires on
// its own.
func (s *StockService) SetStock(ctx context.Context, productID, amount int) (domain.Stock, error) {
	if amount < 0 {
		return domain.Stock{}, ErrInvalidStock
	}

	stock, err := s.db.GetStock(ctx, productID)
	if err != nil {
		return domain.Stock{}, fmt.Errorf("stock lookup failed: %w", err)
	}
	if stock == nil {
		return domain.Stock{}, ErrProductNotFound
	}

	stock.Amount = amount
	if err := s.db.UpdateStock(ctx, *stock); err != nil {
		return domain.Stock{}, fmt.Errorf("stock update failed: %w", err)
	}
	stock.Version++

	if err := s.cache.SetStock(ctx, *stock); err != nil {
		s.log.WithError(err).WithField("product_id", productID).Warn("stock cache refresh failed")
	}

	s.log.WithFields(logrus.Fields{
		"product_id": productID,
		"amount":     amount,
	}).Info("stock updated")

	return *stock, nil
}
