package handler

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/rl1809/rocket-cart/internal/core/domain"
	"github.com/rl1809/rocket-cart/internal/core/service"
)

var errBackend = errors.New("backend unavailable")

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fakeCache struct {
	mu    sync.Mutex
	stock map[int]domain.Stock
}

func newFakeCache() *fakeCache {
	return &fakeCache{stock: make(map[int]domain.Stock)}
}

func (c *fakeCache) GetStock(ctx context.Context, productID int) (domain.Stock, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.stock[productID]
	return s, ok, nil
}

func (c *fakeCache) SetStock(ctx context.Context, stock domain.Stock) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stock[stock.ID] = stock
	return nil
}

type fakeCatalog struct {
	mu       sync.Mutex
	stock    map[int]domain.Stock
	products map[int]domain.Product
	err      error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		stock: map[int]domain.Stock{
			1: {ID: 1, Amount: 3},
			2: {ID: 2, Amount: 5},
		},
		products: map[int]domain.Product{
			1: {ID: 1, Name: "Tênis de Caminhada", Price: decimal.RequireFromString("179.9"), ImageURL: "https://img/1.jpg"},
			2: {ID: 2, Name: "Tênis VR Caminhada", Price: decimal.RequireFromString("139.9"), ImageURL: "https://img/2.jpg"},
		},
	}
}

func (c *fakeCatalog) GetStock(ctx context.Context, productID int) (*domain.Stock, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	s, ok := c.stock[productID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (c *fakeCatalog) GetProduct(ctx context.Context, productID int) (*domain.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	p, ok := c.products[productID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (c *fakeCatalog) UpdateStock(ctx context.Context, stock domain.Stock) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.stock[stock.ID] = stock
	return nil
}

func newStockService(catalog *fakeCatalog) *service.StockService {
	return service.NewStockService(newFakeCache(), catalog, quietLogger())
}

type fakeLookup struct {
	mu    sync.Mutex
	stock map[int]int
	err   error
}

func (l *fakeLookup) GetStock(ctx context.Context, productID int) (domain.Stock, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return domain.Stock{}, l.err
	}
	return domain.Stock{ID: productID, Amount: l.stock[productID]}, nil
}

func (l *fakeLookup) GetProduct(ctx context.Context, productID int) (domain.Product, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return domain.Product{}, l.err
	}
	return domain.Product{ID: productID, Name: "Tênis", Price: decimal.NewFromInt(100)}, nil
}

type memStorage struct {
	mu   sync.Mutex
	cart domain.Cart
	err  error
}

func (m *memStorage) LoadCart(ctx context.Context) (domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.Clone(), nil
}

func (m *memStorage) SaveCart(ctx context.Context, cart domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.cart = cart.Clone()
	return nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Error(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *recordingNotifier) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}
