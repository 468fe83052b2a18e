package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewProduct(t *testing.T) {
	t.Parallel()

	t.Run("valid product", func(t *testing.T) {
		p, err := NewProduct("p-1", "Laptop", "High-performance laptop", decimal.RequireFromString("999.99"), 10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.Stock != 10 {
			t.Fatalf("expected stock 10, got %d", p.Stock)
		}
		if !p.Price.Equal(decimal.RequireFromString("999.99")) {
			t.Fatalf("expected price 999.99, got %s", p.Price)
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		if _, err := NewProduct("p-1", "", "", decimal.NewFromInt(1), 1); err == nil {
			t.Fatalf("expected error for empty name")
		}
	})

	t.Run("negative price rejected", func(t *testing.T) {
		if _, err := NewProduct("p-1", "Laptop", "", decimal.NewFromInt(-1), 1); err == nil {
			t.Fatalf("expected error for negative price")
		}
	})

	t.Run("negative stock rejected", func(t *testing.T) {
		if _, err := NewProduct("p-1", "Laptop", "", decimal.NewFromInt(1), -1); err == nil {
			t.Fatalf("expected error for negative stock")
		}
	})
}

func TestProduct_ReserveStock(t *testing.T) {
	t.Parallel()

	newProduct := func(stock int) Product {
		return Product{ID: "p-1", Name: "Laptop", Price: decimal.NewFromInt(10), Stock: stock}
	}

	t.Run("decrements stock", func(t *testing.T) {
		p := newProduct(10)
		if err := p.ReserveStock(3); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.Stock != 7 {
			t.Fatalf("expected stock 7, got %d", p.Stock)
		}
	})

	t.Run("insufficient stock carries available and requested", func(t *testing.T) {
		p := newProduct(10)
		err := p.ReserveStock(999)

		var insufficient *InsufficientStockError
		if !errors.As(err, &insufficient) {
			t.Fatalf("expected InsufficientStockError, got %v", err)
		}
		if insufficient.Available != 10 || insufficient.Requested != 999 {
			t.Fatalf("expected available=10 requested=999, got %d/%d", insufficient.Available, insufficient.Requested)
		}
		if p.Stock != 10 {
			t.Fatalf("expected stock unchanged at 10, got %d", p.Stock)
		}
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		p := newProduct(10)
		if err := p.ReserveStock(0); !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("expected ErrInvalidQuantity, got %v", err)
		}
		if p.Stock != 10 {
			t.Fatalf("expected stock unchanged at 10, got %d", p.Stock)
		}
	})

	t.Run("negative quantity rejected", func(t *testing.T) {
		p := newProduct(10)
		if err := p.ReserveStock(-1); !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("expected ErrInvalidQuantity, got %v", err)
		}
		if p.Stock != 10 {
			t.Fatalf("expected stock unchanged at 10, got %d", p.Stock)
		}
	})

	t.Run("exact stock drains to zero", func(t *testing.T) {
		p := newProduct(5)
		if err := p.ReserveStock(5); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.Stock != 0 {
			t.Fatalf("expected stock 0, got %d", p.Stock)
		}
	})
}

func TestProduct_ReleaseStock(t *testing.T) {
	t.Parallel()

	t.Run("increments stock", func(t *testing.T) {
		p := Product{ID: "p-1", Name: "Laptop", Stock: 2}
		if err := p.ReleaseStock(3); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.Stock != 5 {
			t.Fatalf("expected stock 5, got %d", p.Stock)
		}
	})

	t.Run("non-positive quantity rejected", func(t *testing.T) {
		p := Product{ID: "p-1", Name: "Laptop", Stock: 2}
		if err := p.ReleaseStock(0); !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("expected ErrInvalidQuantity, got %v", err)
		}
	})
}
