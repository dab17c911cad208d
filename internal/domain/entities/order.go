package entities

import (
	"fmt"
	"math/rand"
	"time"
)

// OrderStatus represents the delivery lifecycle of an order.
//
// Domain notes:
//   - The vendor panel is the source of truth for order state.
//   - Transitions are restricted to the table in validTransitions;
//     delivered and cancelled are terminal.

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusOnTheWay  OrderStatus = "on_the_way"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// validTransitions is the single authority on allowed status moves.
var validTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing: {OrderStatusOnTheWay, OrderStatusCancelled},
	OrderStatusOnTheWay:  {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

func (s OrderStatus) Valid() bool {
	_, ok := validTransitions[s]
	return ok
}

// CanTransitionTo reports whether a move from s to target is allowed.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is permitted from s.
func (s OrderStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// PaymentStatus is tracked independently of the delivery lifecycle.

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusFailed  PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusPending, PaymentStatusFailed:
		return true
	}
	return false
}

type CustomerInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address"`
}

// OrderItem line totals are trusted as given at creation; the engine never
// recomputes them from unit price and quantity.
type OrderItem struct {
	ProductID  string  `json:"product_id"`
	Name       string  `json:"name"`
	Unit       string  `json:"unit"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}

// StatusChange is one entry of the append-only status history.
type StatusChange struct {
	Status    OrderStatus `json:"status"`
	ChangedAt time.Time   `json:"changed_at"`
	Note      string      `json:"note,omitempty"`
}

// Order is the central entity persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (vendor_id-created_at-index): vendor_id, created_at
//
// Version backs optimistic concurrency: every status update carries the
// expected version and bumps it by one.
type Order struct {
	ID            string         `json:"id"`
	OrderNumber   string         `json:"order_number"`
	VendorID      string         `json:"vendor_id"`
	CustomerInfo  CustomerInfo   `json:"customer_info"`
	Items         []OrderItem    `json:"items"`
	Subtotal      float64        `json:"subtotal"`
	DeliveryFee   float64        `json:"delivery_fee"`
	Total         float64        `json:"total"`
	PaymentStatus PaymentStatus  `json:"payment_status"`
	Status        OrderStatus    `json:"status"`
	StatusHistory []StatusChange `json:"status_history"`
	Notes         string         `json:"notes,omitempty"`
	Version       int64          `json:"version"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// NewOrderNumber synthesizes an ORD-YYYYMMDD-NNNN display number. Uniqueness
// is enforced only by the storage-level constraint on order_number; a random
// collision surfaces as a creation error rather than a retry.
func NewOrderNumber(at time.Time) string {
	return fmt.Sprintf("ORD-%s-%04d", at.Format("20060102"), rand.Intn(10000))
}
