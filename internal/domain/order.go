package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusDelivered Status = "DELIVERED"
)

// OrderLine snapshots the product name and unit price at order time; catalog
// edits afterwards must not change historical orders. Immutable once appended.
type OrderLine struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

func (l OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order is the order aggregate: an ordered list of lines plus a status
// machine. The total is derived from the lines, never stored.
type Order struct {
	ID         string
	CustomerID string
	Lines      []OrderLine
	Status     Status
	CreatedAt  time.Time
}

func NewOrder(customerID string) *Order {
	return &Order{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		Status:     StatusPending,
		CreatedAt:  time.Now().UTC(),
	}
}

func (o *Order) AddItem(productID, productName string, quantity int, unitPrice decimal.Decimal) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidLineItem)
	}
	if unitPrice.IsNegative() {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidLineItem)
	}
	o.Lines = append(o.Lines, OrderLine{
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	})
	return nil
}

// Total sums line subtotals in exact decimal arithmetic.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (o *Order) Confirm() error {
	if len(o.Lines) == 0 {
		return fmt.Errorf("%w: cannot confirm empty order", ErrInvalidTransition)
	}
	if o.Status != StatusPending {
		return fmt.Errorf("%w: cannot confirm order with status %s", ErrInvalidTransition, o.Status)
	}
	o.Status = StatusConfirmed
	return nil
}

// Cancel does not restock: reservations are permanent deductions and
// compensation, if any, belongs to the caller.
func (o *Order) Cancel() error {
	if o.Status == StatusDelivered {
		return fmt.Errorf("%w: cannot cancel delivered order", ErrInvalidTransition)
	}
	if o.Status == StatusCancelled {
		return fmt.Errorf("%w: order already cancelled", ErrInvalidTransition)
	}
	o.Status = StatusCancelled
	return nil
}

// MarkDelivered is driven by the external fulfillment process, never by the
// order workflow itself.
func (o *Order) MarkDelivered() error {
	if o.Status != StatusConfirmed {
		return fmt.Errorf("%w: cannot deliver order with status %s", ErrInvalidTransition, o.Status)
	}
	o.Status = StatusDelivered
	return nil
}
