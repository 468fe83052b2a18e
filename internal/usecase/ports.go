package usecase

import (
	"context"

	"github.com/KirillPurposeful/order-service-mvp/internal/domain"
)

// CatalogStore is keyed by product ID. Update applies fn under mutual
// exclusion for that product, so a check-and-decrement inside fn cannot
// interleave with another caller's. Get reports absence via the bool, not an
// error.
type CatalogStore interface {
	Get(ctx context.Context, productID string) (domain.Product, bool, error)
	Put(ctx context.Context, p domain.Product) error
	Update(ctx context.Context, productID string, fn func(*domain.Product) error) (domain.Product, error)
}

// OrderStore is keyed by order ID. Delete reports whether the order existed.
type OrderStore interface {
	Put(ctx context.Context, o domain.Order) error
	Get(ctx context.Context, orderID string) (domain.Order, bool, error)
	GetAll(ctx context.Context) ([]domain.Order, error)
	Delete(ctx context.Context, orderID string) (bool, error)
}

type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}

// EventPublisher emits order lifecycle events. Publication is best-effort:
// the workflow never fails an already-persisted order because a broker is
// down.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, msg OrderCreatedMsg) error
	PublishStatusChanged(ctx context.Context, msg OrderStatusChangedMsg) error
}
