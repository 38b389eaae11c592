package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus enumerates the order lifecycle states.
type OrderStatus string

const (
	StatusReceived      OrderStatus = "RECEIVED"
	StatusPaid          OrderStatus = "PAID"
	StatusPaymentFailed OrderStatus = "PAYMENT_FAILED"
	StatusPreparing     OrderStatus = "PREPARING"
	StatusShipped       OrderStatus = "SHIPPED"
	StatusDelivered     OrderStatus = "DELIVERED"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusReceived, StatusPaid, StatusPaymentFailed,
		StatusPreparing, StatusShipped, StatusDelivered:
		return true
	}
	return false
}

// Order represents a client's purchase with its line items.
type Order struct {
	ID        int64           `json:"id" db:"id"`
	ClientID  int64           `json:"-" db:"client_id"`
	Client    *Client         `json:"client,omitempty"`
	Status    OrderStatus     `json:"status" db:"status"`
	OrderDate time.Time       `json:"orderDate" db:"order_date"`
	Total     decimal.Decimal `json:"total" db:"total"`
	Items     []OrderItem     `json:"items"`
}

// OrderItem is a line within an order. The unit price is snapshotted at
// order time and the subtotal is always unitPrice * quantity.
type OrderItem struct {
	ID        int64           `json:"id" db:"id"`
	OrderID   int64           `json:"-" db:"order_id"`
	ProductID int64           `json:"-" db:"product_id"`
	Product   *Product        `json:"product,omitempty"`
	Quantity  int             `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice" db:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal" db:"subtotal"`
}

// OrderRequest is the payload for creating an order. Total is accepted for
// compatibility but always recomputed from the items.
type OrderRequest struct {
	ClientID int64              `json:"clientId"`
	Status   OrderStatus        `json:"status,omitempty"`
	Total    decimal.Decimal    `json:"total"`
	Items    []OrderItemRequest `json:"items"`
}

// OrderItemRequest represents a single item in an order request.
type OrderItemRequest struct {
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// PaymentRequest is the payload for POST /orders/{id}/pay.
type PaymentRequest struct {
	Success bool `json:"success"`
}

// UpdateOrderRequest is the payload for PATCH /orders/{id}.
type UpdateOrderRequest struct {
	Status OrderStatus `json:"status"`
}
