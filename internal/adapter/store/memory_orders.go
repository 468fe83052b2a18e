package store

import (
	"context"
	"sync"

	"github.com/KirillPurposeful/order-service-mvp/internal/domain"
	"github.com/KirillPurposeful/order-service-mvp/internal/usecase"
)

// MemoryOrders is a process-local order store. A single RWMutex is enough
// here: order writes are whole-value upserts, not read-modify-write cycles.
type MemoryOrders struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

func NewMemoryOrders() *MemoryOrders {
	return &MemoryOrders{orders: make(map[string]domain.Order)}
}

func (s *MemoryOrders) Put(ctx context.Context, o domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = o
	return nil
}

func (s *MemoryOrders) Get(ctx context.Context, orderID string) (domain.Order, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[orderID]
	return o, ok, nil
}

func (s *MemoryOrders) GetAll(ctx context.Context) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o)
	}
	return out, nil
}

func (s *MemoryOrders) Delete(ctx context.Context, orderID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[orderID]; !ok {
		return false, nil
	}
	delete(s.orders, orderID)
	return true, nil
}

var _ usecase.OrderStore = (*MemoryOrders)(nil)
