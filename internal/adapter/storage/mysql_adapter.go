package storage

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/rl1809/rocket-cart/internal/core/domain"
)

var ErrOptimisticLock = errors.New("optimistic lock conflict")

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) GetStock(ctx context.Context, productID int) (*domain.Stock, error) {
	var stock domain.Stock
	err := m.db.QueryRowContext(ctx, `
		SELECT product_id, stock, version, updated_at
		FROM inventory WHERE product_id = ?`, productID,
	).Scan(&stock.ID, &stock.Amount, &stock.Version, &stock.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "query inventory")
	}

	return &stock, nil
}

func (m *MySQLAdapter) GetProduct(ctx context.Context, productID int) (*domain.Product, error) {
	var p domain.Product
	err := m.db.QueryRowContext(ctx, `
		SELECT id, name, price, image_url
		FROM products WHERE id = ?`, productID,
	).Scan(&p.ID, &p.Name, &p.Price, &p.ImageURL)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "query product")
	}

	return &p, nil
}

func (m *MySQLAdapter) UpdateStock(ctx context.Context, stock domain.Stock) error {
	result, err := m.db.ExecContext(ctx, `
		UPDATE inventory 
		SET stock = ?, version = version + 1, updated_at = NOW()
		WHERE product_id = ? AND version = ?`,
		stock.Amount, stock.ID, stock.Version,
	)
	if err != nil {
		return errors.Wrap(err, "update inventory")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrOptimisticLock
	}

	return nil
}
