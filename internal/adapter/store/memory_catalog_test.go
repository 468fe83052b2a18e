package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/KirillPurposeful/order-service-mvp/internal/domain"
)

func putProduct(t *testing.T, c *MemoryCatalog, id string, stock int) {
	t.Helper()
	err := c.Put(context.Background(), domain.Product{
		ID:    id,
		Name:  "Widget",
		Price: decimal.NewFromInt(5),
		Stock: stock,
	})
	if err != nil {
		t.Fatalf("put %s: %v", id, err)
	}
}

func TestMemoryCatalog_GetPut(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := NewMemoryCatalog()

	if _, ok, err := c.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected absent product: ok=%v err=%v", ok, err)
	}

	putProduct(t, c, "p-1", 3)
	p, ok, err := c.Get(ctx, "p-1")
	if err != nil || !ok {
		t.Fatalf("expected product: ok=%v err=%v", ok, err)
	}
	if p.Stock != 3 {
		t.Fatalf("expected stock 3, got %d", p.Stock)
	}

	// Put is an upsert.
	putProduct(t, c, "p-1", 7)
	p, _, _ = c.Get(ctx, "p-1")
	if p.Stock != 7 {
		t.Fatalf("expected stock 7 after upsert, got %d", p.Stock)
	}
}

func TestMemoryCatalog_Update(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("applies mutation and returns updated product", func(t *testing.T) {
		c := NewMemoryCatalog()
		putProduct(t, c, "p-1", 10)

		updated, err := c.Update(ctx, "p-1", func(p *domain.Product) error {
			return p.ReserveStock(4)
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated.Stock != 6 {
			t.Fatalf("expected stock 6, got %d", updated.Stock)
		}

		stored, _, _ := c.Get(ctx, "p-1")
		if stored.Stock != 6 {
			t.Fatalf("expected stored stock 6, got %d", stored.Stock)
		}
	})

	t.Run("failed mutation leaves stored product untouched", func(t *testing.T) {
		c := NewMemoryCatalog()
		putProduct(t, c, "p-1", 2)

		_, err := c.Update(ctx, "p-1", func(p *domain.Product) error {
			return p.ReserveStock(5)
		})
		var insufficient *domain.InsufficientStockError
		if !errors.As(err, &insufficient) {
			t.Fatalf("expected InsufficientStockError, got %v", err)
		}

		stored, _, _ := c.Get(ctx, "p-1")
		if stored.Stock != 2 {
			t.Fatalf("expected stock unchanged at 2, got %d", stored.Stock)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		c := NewMemoryCatalog()
		_, err := c.Update(ctx, "ghost", func(p *domain.Product) error { return nil })

		var notFound *domain.ProductNotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("expected ProductNotFoundError, got %v", err)
		}
		if notFound.ProductID != "ghost" {
			t.Fatalf("expected id ghost, got %s", notFound.ProductID)
		}
	})
}

// Two concurrent reservations must never both pass the stock check when only
// one can be satisfied.
func TestMemoryCatalog_UpdateSerializesPerProduct(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	const stock = 100
	c := NewMemoryCatalog()
	putProduct(t, c, "p-1", stock)
	putProduct(t, c, "p-2", stock)

	var wg sync.WaitGroup
	failures := make(chan error, 2*stock)
	for i := 0; i < 2*stock; i++ {
		id := "p-1"
		if i%2 == 0 {
			id = "p-2"
		}
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := c.Update(ctx, id, func(p *domain.Product) error {
				return p.ReserveStock(1)
			})
			if err != nil {
				failures <- err
			}
		}(id)
	}
	wg.Wait()
	close(failures)

	for err := range failures {
		t.Fatalf("expected every reservation to succeed, got %v", err)
	}
	for _, id := range []string{"p-1", "p-2"} {
		p, _, _ := c.Get(ctx, id)
		if p.Stock != 0 {
			t.Fatalf("expected %s drained to 0, got %d", id, p.Stock)
		}
	}
}
