package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/KirillPurposeful/order-service-mvp/internal/domain"
	"github.com/KirillPurposeful/order-service-mvp/internal/logging"
	"github.com/KirillPurposeful/order-service-mvp/internal/usecase"
)

type OrderHandler struct {
	orders *usecase.OrderService
}

func NewOrderHandler(orders *usecase.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type createOrderItemReq struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type createOrderReq struct {
	CustomerID string               `json:"customer_id" binding:"required"`
	Items      []createOrderItemReq `json:"items" binding:"required,min=1,dive"`
}

type orderLineResp struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type orderResp struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Status     string          `json:"status"`
	Items      []orderLineResp `json:"items"`
	Total      decimal.Decimal `json:"total"`
}

func toOrderResp(o domain.Order) orderResp {
	items := make([]orderLineResp, 0, len(o.Lines))
	for _, l := range o.Lines {
		items = append(items, orderLineResp{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			Price:       l.UnitPrice,
			Subtotal:    l.Subtotal(),
		})
	}
	return orderResp{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Status:     string(o.Status),
		Items:      items,
		Total:      o.Total(),
	}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	idemKey := c.GetHeader("X-Idempotency-Key")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	items := make([]usecase.CreateOrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.CreateOrderItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	order, err := h.orders.CreateOrder(ctx, usecase.CreateOrderInput{
		CustomerID:     req.CustomerID,
		IdempotencyKey: idemKey,
		Items:          items,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	logging.From(c).Info("order created",
		"order_id", order.ID, "customer_id", order.CustomerID, "lines", len(order.Lines))
	c.JSON(http.StatusCreated, toOrderResp(order))
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	orders, err := h.orders.GetAllOrders(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]orderResp, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResp(o))
	}
	c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	order, found, err := h.orders.GetOrderByID(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "order not found"})
		return
	}
	c.JSON(http.StatusOK, toOrderResp(order))
}

func (h *OrderHandler) ConfirmOrder(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	order, err := h.orders.ConfirmOrder(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResp(order))
}

func (h *OrderHandler) CancelOrder(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	order, err := h.orders.CancelOrder(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResp(order))
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	existed, err := h.orders.DeleteOrder(ctx, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if !existed {
		c.JSON(http.StatusNotFound, gin.H{"detail": "order not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, err error) {
	var notFound *domain.ProductNotFoundError
	var noStock *domain.InsufficientStockError

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &notFound), errors.Is(err, domain.ErrOrderNotFound):
		status = http.StatusNotFound
	case errors.As(err, &noStock),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidLineItem),
		errors.Is(err, domain.ErrEmptyOrder):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, usecase.ErrDuplicateRequest):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		logging.From(c).Error("request failed", "err", err)
	}
	c.JSON(status, gin.H{"detail": err.Error()})
}
