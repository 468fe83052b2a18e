package kafka

import (
	"context"
	"errors"
	"log/slog"

	"github.com/KirillPurposeful/order-service-mvp/internal/domain"
	"github.com/KirillPurposeful/order-service-mvp/internal/usecase"
)

// FulfillmentHandler applies status changes reported by the external
// fulfillment process. Only DELIVERED is recognized; the order workflow owns
// every other transition.
type FulfillmentHandler struct {
	Orders *usecase.OrderService
	Logger *slog.Logger
}

func NewFulfillmentHandler(orders *usecase.OrderService, l *slog.Logger) *FulfillmentHandler {
	return &FulfillmentHandler{Orders: orders, Logger: l}
}

func (h *FulfillmentHandler) Handle(ctx context.Context, ev usecase.OrderStatusChangedMsg) error {
	if ev.Status != string(domain.StatusDelivered) {
		h.Logger.Warn("ignoring fulfillment status", "order_id", ev.OrderID, "status", ev.Status)
		return nil
	}

	_, err := h.Orders.MarkDelivered(ctx, ev.OrderID)
	switch {
	case err == nil:
		h.Logger.Info("order delivered", "order_id", ev.OrderID)
		return nil
	case errors.Is(err, domain.ErrOrderNotFound), errors.Is(err, domain.ErrInvalidTransition):
		// Terminal for this message; retrying cannot make it applicable.
		h.Logger.Warn("fulfillment event not applicable", "order_id", ev.OrderID, "err", err)
		return nil
	default:
		return err
	}
}
