package storage

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/rl1809/rocket-cart/internal/core/domain"
)

const (
	stockKeyPrefix = "stock:"

	// DefaultCartKey is the slot the cart snapshot lives in.
	DefaultCartKey = "@RocketShoes:cart"
)

// RedisAdapter keeps the cart snapshot in a single key and caches stock levels
// under stock:<id>.
type RedisAdapter struct {
	client   *redis.Client
	cartKey  string
	stockTTL time.Duration
}

func NewRedisAdapter(client *redis.Client, cartKey string, stockTTL time.Duration) *RedisAdapter {
	if cartKey == "" {
		cartKey = DefaultCartKey
	}
	return &RedisAdapter{
		client:   client,
		cartKey:  cartKey,
		stockTTL: stockTTL,
	}
}

func (r *RedisAdapter) LoadCart(ctx context.Context) (domain.Cart, error) {
	data, err := r.client.Get(ctx, r.cartKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Cart{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "redis get %s", r.cartKey)
	}
	return decodeCart(data)
}

func (r *RedisAdapter) SaveCart(ctx context.Context, cart domain.Cart) error {
	data, err := encodeCart(cart)
	if err != nil {
		return err
	}
	return errors.Wrapf(r.client.Set(ctx, r.cartKey, data, 0).Err(), "redis set %s", r.cartKey)
}

func (r *RedisAdapter) GetStock(ctx context.Context, productID int) (domain.Stock, bool, error) {
	amount, err := r.client.Get(ctx, stockKey(productID)).Int()
	if errors.Is(err, redis.Nil) {
		return domain.Stock{}, false, nil
	}
	if err != nil {
		return domain.Stock{}, false, errors.Wrapf(err, "redis get stock %d", productID)
	}
	return domain.Stock{ID: productID, Amount: amount}, true, nil
}

func (r *RedisAdapter) SetStock(ctx context.Context, stock domain.Stock) error {
	err := r.client.Set(ctx, stockKey(stock.ID), stock.Amount, r.stockTTL).Err()
	return errors.Wrapf(err, "redis set stock %d", stock.ID)
}

func stockKey(productID int) string {
	return stockKeyPrefix + strconv.Itoa(productID)
}
