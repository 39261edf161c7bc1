package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/rl1809/rocket-cart/internal/core/domain"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestRedisCart_LoadAbsent(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client, "test:cart:absent", 0)
	client.Del(ctx, "test:cart:absent")

	cart, err := adapter.LoadCart(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart == nil || len(cart) != 0 {
		t.Errorf("expected empty cart, got %#v", cart)
	}
}

func TestRedisCart_SaveAndLoad(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client, "test:cart", 0)
	defer client.Del(ctx, "test:cart")

	cart := domain.Cart{
		{ID: 2, Name: "Tênis VR Caminhada", Price: decimal.RequireFromString("139.90"), ImageURL: "https://img/2.jpg", Amount: 1},
		{ID: 1, Name: "Tênis de Caminhada", Price: decimal.RequireFromString("179.90"), ImageURL: "https://img/1.jpg", Amount: 3},
	}
	if err := adapter.SaveCart(ctx, cart); err != nil {
		t.Fatalf("SaveCart failed: %v", err)
	}

	loaded, err := adapter.LoadCart(ctx)
	if err != nil {
		t.Fatalf("LoadCart failed: %v", err)
	}
	if diff := cmp.Diff(cart, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	// Overwrite, never merge
	if err := adapter.SaveCart(ctx, cart[:1]); err != nil {
		t.Fatalf("SaveCart failed: %v", err)
	}
	loaded, _ = adapter.LoadCart(ctx)
	if len(loaded) != 1 {
		t.Errorf("expected 1 entry after overwrite, got %d", len(loaded))
	}
}

func TestRedisStock_Cache(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client, "", time.Minute)

	// Setup
	client.Del(ctx, "stock:9001")

	_, ok, err := adapter.GetStock(ctx, 9001)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected cache miss")
	}

	if err := adapter.SetStock(ctx, domain.Stock{ID: 9001, Amount: 7}); err != nil {
		t.Fatalf("SetStock failed: %v", err)
	}

	stock, ok, err := adapter.GetStock(ctx, 9001)
	if err != nil || !ok {
		t.Fatalf("expected cache hit, got ok=%v err=%v", ok, err)
	}
	if stock.Amount != 7 {
		t.Errorf("expected stock 7, got %d", stock.Amount)
	}

	ttl := client.TTL(ctx, "stock:9001").Val()
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("expected ttl within a minute, got %v", ttl)
	}
}
