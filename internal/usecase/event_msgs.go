package usecase

import "time"

type OrderCreatedMsg struct {
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id"`
	Total      string    `json:"total"`
	CreatedAt  time.Time `json:"created_at"`
}

// OrderStatusChangedMsg doubles as the payload consumed from the fulfillment
// topic: the external process sends {order_id, status:"DELIVERED"}.
type OrderStatusChangedMsg struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}
