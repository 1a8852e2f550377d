package domain

import (
	"time"

	"github.com/google/uuid"
)

type EventKind string

const (
	EventOrderPlaced    EventKind = "order.placed"
	EventOrderConfirmed EventKind = "order.confirmed"
	EventOrderPreparing EventKind = "order.preparing"
	EventOrderShipped   EventKind = "order.shipped"
	EventOrderDelivered EventKind = "order.delivered"
	EventOrderCancelled EventKind = "order.cancelled"
	EventOrderReturned  EventKind = "order.returned"
)

// Event is the envelope for everything an order aggregate announces.
// Exactly one payload pointer is set, matching Kind. Delivery is
// at-least-once, so consumers deduplicate on ID.
type Event struct {
	ID         string    `json:"event_id"`
	Kind       EventKind `json:"kind"`
	OrderID    OrderID   `json:"order_id"`
	OccurredAt time.Time `json:"occurred_at"`

	Placed    *OrderPlacedPayload    `json:"placed,omitempty"`
	Shipped   *OrderShippedPayload   `json:"shipped,omitempty"`
	Cancelled *OrderCancelledPayload `json:"cancelled,omitempty"`
}

type OrderPlacedPayload struct {
	CustomerID CustomerID     `json:"customer_id"`
	Total      string         `json:"total"`
	Currency   string         `json:"currency"`
	Items      []ItemSnapshot `json:"items"`
}

type ItemSnapshot struct {
	ProductID   ProductID `json:"product_id"`
	ProductName string    `json:"product_name"`
	UnitPrice   string    `json:"unit_price"`
	Quantity    int       `json:"quantity"`
}

type OrderShippedPayload struct {
	TrackingNumber string `json:"tracking_number"`
	Carrier        string `json:"carrier"`
}

type OrderCancelledPayload struct {
	Reason string `json:"reason,omitempty"`
}

func newEvent(kind EventKind, orderID OrderID, at time.Time) Event {
	return Event{
		ID:         uuid.NewString(),
		Kind:       kind,
		OrderID:    orderID,
		OccurredAt: at,
	}
}
