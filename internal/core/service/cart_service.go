package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rl1809/rocket-cart/internal/core/domain"
	"github.com/rl1809/rocket-cart/internal/port"
)

var (
	ErrStockExceeded    = errors.New("requested quantity exceeds stock")
	ErrProductNotInCart = errors.New("product not in cart")
	ErrLookupFailed     = errors.New("stock lookup failed")
	ErrPersistFailed    = errors.New("cart persist failed")
	ErrCorruptSnapshot  = errors.New("corrupt cart snapshot")
)

const tracerName = "github.com/rl1809/rocket-cart/internal/core/service"

type UpdateProductAmount struct {
	ProductID int
	Amount    int
}

// Listener receives a copy of the cart after every successful mutation.
type Listener func(ctx context.Context, cart domain.Cart)

type listenerEntry struct {
	id int
	fn Listener
}

// CartService owns the cart of one session. The cart is loaded from storage
// once, at construction, and written back in full after every mutation.
//
// Operations block until their lookups and the durable write finish. The lock
// is never held across a lookup, so overlapping mutations (two AddProduct for
// the same id, typically) can lose an update. Callers that issue them
// concurrently must serialize.
type CartService struct {
	lookup    port.StockLookup
	storage   port.CartStorage
	log       logrus.FieldLogger
	tracer    trace.Tracer
	sessionID string

	mu           sync.RWMutex
	cart         domain.Cart
	listeners    []listenerEntry
	nextListener int
}

type Option func(*CartService)

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *CartService) { s.log = log }
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *CartService) { s.tracer = tracer }
}

func WithSessionID(id string) Option {
	return func(s *CartService) { s.sessionID = id }
}

func NewCartService(ctx context.Context, lookup port.StockLookup, storage port.CartStorage, opts ...Option) (*CartService, error) {
	s := &CartService{
		lookup:    lookup,
		storage:   storage,
		log:       logrus.StandardLogger(),
		tracer:    otel.Tracer(tracerName),
		sessionID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithField("session_id", s.sessionID)

	cart, err := storage.LoadCart(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if err := cart.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	s.cart = cart.Clone()

	s.log.WithField("items", len(s.cart)).Debug("cart loaded")
	return s, nil
}

func (s *CartService) SessionID() string {
	return s.sessionID
}

// Cart returns a copy of the current cart.
func (s *CartService) Cart() domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Clone()
}

// Subscribe registers l and returns a function that removes it.
func (s *CartService) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: l})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, e := range s.listeners {
				if e.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *CartService) AddProduct(ctx context.Context, productID int) (err error) {
	ctx, span := s.startSpan(ctx, "CartService.AddProduct", productID)
	defer func() { endSpan(span, err) }()

	stock, err := s.lookup.GetStock(ctx, productID)
	if err != nil {
		return s.fail("add", productID, fmt.Errorf("%w: stock of product %d: %w", ErrLookupFailed, productID, err))
	}

	current := s.Cart()
	existing, found := current.Find(productID)
	desired := existing.Amount + 1

	if desired > stock.Amount {
		return s.fail("add", productID, fmt.Errorf("%w: product %d wants %d, stock %d", ErrStockExceeded, productID, desired, stock.Amount))
	}

	var next domain.Cart
	if found {
		next = current.WithAmount(productID, desired)
	} else {
		product, err := s.lookup.GetProduct(ctx, productID)
		if err != nil {
			return s.fail("add", productID, fmt.Errorf("%w: product %d: %w", ErrLookupFailed, productID, err))
		}
		product.ID = productID
		product.Amount = 1
		next = current.WithAdded(product)
	}

	return s.commit(ctx, "add", productID, next)
}

func (s *CartService) RemoveProduct(ctx context.Context, productID int) (err error) {
	ctx, span := s.startSpan(ctx, "CartService.RemoveProduct", productID)
	defer func() { endSpan(span, err) }()

	current := s.Cart()
	if _, found := current.Find(productID); !found {
		return s.fail("remove", productID, fmt.Errorf("%w: product %d", ErrProductNotInCart, productID))
	}

	return s.commit(ctx, "remove", productID, current.Without(productID))
}

// UpdateProductAmount sets the quantity of a product already in the cart.
// Amounts below 1 are ignored without error.
func (s *CartService) UpdateProductAmount(ctx context.Context, req UpdateProductAmount) (err error) {
	if req.Amount < 1 {
		return nil
	}

	ctx, span := s.startSpan(ctx, "CartService.UpdateProductAmount", req.ProductID)
	span.SetAttributes(attribute.Int("cart.amount", req.Amount))
	defer func() { endSpan(span, err) }()

	current := s.Cart()
	if _, found := current.Find(req.ProductID); !found {
		return s.fail("update", req.ProductID, fmt.Errorf("%w: product %d", ErrProductNotInCart, req.ProductID))
	}

	stock, err := s.lookup.GetStock(ctx, req.ProductID)
	if err != nil {
		return s.fail("update", req.ProductID, fmt.Errorf("%w: stock of product %d: %w", ErrLookupFailed, req.ProductID, err))
	}

	if req.Amount > stock.Amount {
		return s.fail("update", req.ProductID, fmt.Errorf("%w: product %d wants %d, stock %d", ErrStockExceeded, req.ProductID, req.Amount, stock.Amount))
	}

	return s.commit(ctx, "update", req.ProductID, current.WithAmount(req.ProductID, req.Amount))
}

// commit writes next to storage and only then makes it the current cart, so
// memory and snapshot stay equal when the write fails.
func (s *CartService) commit(ctx context.Context, op string, productID int, next domain.Cart) error {
	s.mu.Lock()
	if err := s.storage.SaveCart(ctx, next); err != nil {
		s.mu.Unlock()
		return s.fail(op, productID, fmt.Errorf("%w: %w", ErrPersistFailed, err))
	}
	s.cart = next
	listeners := make([]Listener, 0, len(s.listeners))
	for _, e := range s.listeners {
		listeners = append(listeners, e.fn)
	}
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"op":         op,
		"product_id": productID,
		"items":      len(next),
	}).Debug("cart updated")

	for _, l := range listeners {
		l(ctx, next.Clone())
	}
	return nil
}

func (s *CartService) fail(op string, productID int, err error) error {
	s.log.WithFields(logrus.Fields{
		"op":         op,
		"product_id": productID,
	}).WithError(err).Warn("cart operation rejected")
	return err
}

func (s *CartService) startSpan(ctx context.Context, name string, productID int) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name,
		trace.WithAttributes(
			attribute.Int("product.id", productID),
			attribute.String("cart.session_id", s.sessionID),
		),
	)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
