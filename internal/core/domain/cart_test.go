package domain

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func sampleCart() Cart {
	return Cart{
		{ID: 1, Name: "Tênis de Caminhada", Price: decimal.RequireFromString("179.90"), ImageURL: "https://img/1.jpg", Amount: 2},
		{ID: 2, Name: "Tênis VR Caminhada", Price: decimal.RequireFromString("139.90"), ImageURL: "https://img/2.jpg", Amount: 1},
	}
}

func TestCart_Find(t *testing.T) {
	c := sampleCart()

	p, ok := c.Find(2)
	if !ok {
		t.Fatal("expected product 2 to be found")
	}
	if p.Name != "Tênis VR Caminhada" {
		t.Errorf("expected product 2 name, got %s", p.Name)
	}

	if _, ok := c.Find(99); ok {
		t.Error("expected product 99 to be absent")
	}
	if c.Amount(99) != 0 {
		t.Errorf("expected amount 0 for absent product, got %d", c.Amount(99))
	}
}

func TestCart_WithAdded(t *testing.T) {
	c := sampleCart()
	before := c.Clone()

	next := c.WithAdded(Product{ID: 3, Name: "Chinelo", Price: decimal.NewFromInt(20), Amount: 1})

	if len(next) != 3 || next[2].ID != 3 {
		t.Fatalf("expected product 3 appended last, got %+v", next)
	}
	if diff := cmp.Diff(before, c); diff != "" {
		t.Errorf("receiver changed (-want +got):\n%s", diff)
	}
}

func TestCart_WithAmount(t *testing.T) {
	c := sampleCart()
	before := c.Clone()

	next := c.WithAmount(1, 5)

	if next[0].Amount != 5 {
		t.Errorf("expected amount 5, got %d", next[0].Amount)
	}
	if diff := cmp.Diff(before[1], next[1]); diff != "" {
		t.Errorf("untouched entry changed (-want +got):\n%s", diff)
	}
	if c[0].Amount != 2 {
		t.Errorf("expected receiver entry to keep amount 2, got %d", c[0].Amount)
	}
	if diff := cmp.Diff(before, c); diff != "" {
		t.Errorf("receiver changed (-want +got):\n%s", diff)
	}
}

func TestCart_Without(t *testing.T) {
	c := sampleCart()

	next := c.Without(1)
	if len(next) != 1 || next[0].ID != 2 {
		t.Fatalf("expected only product 2 left, got %+v", next)
	}
	if len(c) != 2 {
		t.Errorf("expected receiver length 2, got %d", len(c))
	}

	same := c.Without(42)
	if diff := cmp.Diff(c, same); diff != "" {
		t.Errorf("removing absent id changed cart (-want +got):\n%s", diff)
	}
}

func TestCart_TotalAndCount(t *testing.T) {
	c := sampleCart()

	want := decimal.RequireFromString("499.70")
	if !c.Total().Equal(want) {
		t.Errorf("expected total %s, got %s", want, c.Total())
	}
	if c.ItemCount() != 2 {
		t.Errorf("expected 2 items, got %d", c.ItemCount())
	}
	if !Cart(nil).Total().IsZero() {
		t.Error("expected zero total for empty cart")
	}
}

func TestCart_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		if err := sampleCart().Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("zero amount", func(t *testing.T) {
		c := sampleCart()
		c[0].Amount = 0
		if err := c.Validate(); !errors.Is(err, ErrInvalidCart) {
			t.Fatalf("expected ErrInvalidCart, got %v", err)
		}
	})

	t.Run("duplicate id", func(t *testing.T) {
		c := sampleCart()
		c[1].ID = 1
		if err := c.Validate(); !errors.Is(err, ErrInvalidCart) {
			t.Fatalf("expected ErrInvalidCart, got %v", err)
		}
	})
}
