package store

import (
	"context"
	"sync"

	"github.com/KirillPurposeful/order-service-mvp/internal/domain"
	"github.com/KirillPurposeful/order-service-mvp/internal/usecase"
)

// MemoryCatalog keeps products in a process-local map. Each product gets its
// own mutex so Update serializes read-modify-write per product without
// blocking the rest of the catalog.
type MemoryCatalog struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	locks    map[string]*sync.Mutex
}

func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		products: make(map[string]domain.Product),
		locks:    make(map[string]*sync.Mutex),
	}
}

func (c *MemoryCatalog) Get(ctx context.Context, productID string) (domain.Product, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[productID]
	return p, ok, nil
}

func (c *MemoryCatalog) Put(ctx context.Context, p domain.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[p.ID] = p
	if _, ok := c.locks[p.ID]; !ok {
		c.locks[p.ID] = &sync.Mutex{}
	}
	return nil
}

// Update applies fn to a copy of the product under that product's lock and
// writes the copy back only when fn succeeds. A failed fn leaves the stored
// product untouched.
func (c *MemoryCatalog) Update(ctx context.Context, productID string, fn func(*domain.Product) error) (domain.Product, error) {
	c.mu.RLock()
	lock, ok := c.locks[productID]
	c.mu.RUnlock()
	if !ok {
		return domain.Product{}, &domain.ProductNotFoundError{ProductID: productID}
	}

	lock.Lock()
	defer lock.Unlock()

	c.mu.RLock()
	p, ok := c.products[productID]
	c.mu.RUnlock()
	if !ok {
		return domain.Product{}, &domain.ProductNotFoundError{ProductID: productID}
	}

	if err := fn(&p); err != nil {
		return domain.Product{}, err
	}

	c.mu.Lock()
	c.products[productID] = p
	c.mu.Unlock()
	return p, nil
}

var _ usecase.CatalogStore = (*MemoryCatalog)(nil)
