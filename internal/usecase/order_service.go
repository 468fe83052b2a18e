package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirillPurposeful/order-service-mvp/internal/domain"
)

var ErrDuplicateRequest = errors.New("duplicate idempotency key")

type CreateOrderItemInput struct {
	ProductID string
	Quantity  int
}

type CreateOrderInput struct {
	CustomerID     string
	IdempotencyKey string // optional; empty disables the idempotency path
	Items          []CreateOrderItemInput
}

// OrderService coordinates catalog lookups, stock reservation and order
// persistence. Stores are injected at construction; there are no package
// level singletons.
type OrderService struct {
	catalog CatalogStore
	orders  OrderStore
	idem    IdempotencyStore
	events  EventPublisher
}

func NewOrderService(catalog CatalogStore, orders OrderStore, opts ...OrderServiceOption) *OrderService {
	svc := &OrderService{
		catalog: catalog,
		orders:  orders,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type OrderServiceOption func(*OrderService)

// WithIdempotency enables duplicate-request detection for creates carrying an
// idempotency key.
func WithIdempotency(store IdempotencyStore) OrderServiceOption {
	return func(s *OrderService) { s.idem = store }
}

// WithEvents enables lifecycle event publication.
func WithEvents(pub EventPublisher) OrderServiceOption {
	return func(s *OrderService) { s.events = pub }
}

// CreateOrder walks the requested items in input order: resolve the product,
// reserve stock, snapshot name and price into a new line. Each reservation is
// visible to other callers as soon as it is applied. On a mid-sequence
// failure the earlier lines keep their reservations; compensation is the
// caller's concern, so the whole failure surfaces synchronously and nothing
// partial is persisted.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (domain.Order, error) {
	if len(in.Items) == 0 {
		return domain.Order{}, domain.ErrEmptyOrder
	}
	// Reject malformed quantities up front so a bad later line cannot leave
	// decrements behind for the earlier ones.
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return domain.Order{}, fmt.Errorf("%w: product %s", domain.ErrInvalidQuantity, it.ProductID)
		}
	}

	if s.idem != nil && in.IdempotencyKey != "" {
		if id, ok, err := s.idem.Recall(ctx, in.CustomerID, in.IdempotencyKey); err != nil {
			return domain.Order{}, err
		} else if ok {
			if existing, found, err := s.orders.Get(ctx, id); err != nil {
				return domain.Order{}, err
			} else if found {
				return existing, nil
			}
		}
		ok, err := s.idem.TryLock(ctx, in.CustomerID, in.IdempotencyKey)
		if err != nil {
			return domain.Order{}, err
		}
		if !ok {
			return domain.Order{}, ErrDuplicateRequest
		}
	}

	order := domain.NewOrder(in.CustomerID)
	for _, it := range in.Items {
		product, err := s.catalog.Update(ctx, it.ProductID, func(p *domain.Product) error {
			return p.ReserveStock(it.Quantity)
		})
		if err != nil {
			return domain.Order{}, err
		}
		if err := order.AddItem(product.ID, product.Name, it.Quantity, product.Price); err != nil {
			return domain.Order{}, err
		}
	}

	if err := s.orders.Put(ctx, *order); err != nil {
		return domain.Order{}, err
	}

	if s.events != nil {
		_ = s.events.PublishOrderCreated(ctx, OrderCreatedMsg{
			OrderID:    order.ID,
			CustomerID: order.CustomerID,
			Total:      order.Total().String(),
			CreatedAt:  order.CreatedAt,
		})
	}
	if s.idem != nil && in.IdempotencyKey != "" {
		_ = s.idem.Remember(ctx, in.CustomerID, in.IdempotencyKey, order.ID)
	}
	return *order, nil
}

func (s *OrderService) GetAllOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.GetAll(ctx)
}

// GetOrderByID reports absence via the bool, not an error.
func (s *OrderService) GetOrderByID(ctx context.Context, orderID string) (domain.Order, bool, error) {
	return s.orders.Get(ctx, orderID)
}

// ConfirmOrder runs the PENDING -> CONFIRMED transition.
func (s *OrderService) ConfirmOrder(ctx context.Context, orderID string) (domain.Order, error) {
	return s.transition(ctx, orderID, (*domain.Order).Confirm)
}

// CancelOrder runs the status transition to CANCELLED. The order stays in the
// store and no stock is returned.
func (s *OrderService) CancelOrder(ctx context.Context, orderID string) (domain.Order, error) {
	return s.transition(ctx, orderID, (*domain.Order).Cancel)
}

// MarkDelivered is invoked by the fulfillment consumer, not the HTTP surface.
func (s *OrderService) MarkDelivered(ctx context.Context, orderID string) (domain.Order, error) {
	return s.transition(ctx, orderID, (*domain.Order).MarkDelivered)
}

// DeleteOrder removes the order outright and reports whether it existed.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID string) (bool, error) {
	return s.orders.Delete(ctx, orderID)
}

func (s *OrderService) transition(ctx context.Context, orderID string, apply func(*domain.Order) error) (domain.Order, error) {
	order, found, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if !found {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	if err := apply(&order); err != nil {
		return domain.Order{}, err
	}
	if err := s.orders.Put(ctx, order); err != nil {
		return domain.Order{}, err
	}
	if s.events != nil {
		_ = s.events.PublishStatusChanged(ctx, OrderStatusChangedMsg{
			OrderID: order.ID,
			Status:  string(order.Status),
		})
	}
	return order, nil
}
