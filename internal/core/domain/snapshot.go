package domain

import "time"

// OrderSnapshot is the persistence memento of an Order. It exists so
// the repository can rebuild an aggregate without the domain package
// exposing setters. Nothing outside a repository implementation should
// construct or consume one.
type OrderSnapshot struct {
	ID              OrderID
	CustomerID      CustomerID
	Status          OrderStatus
	ShippingAddress *Address
	BillingAddress  *Address
	Version         int64
	Revision        int64
	CreatedAt       time.Time
	ModifiedAt      time.Time
	Items           []OrderItemSnapshot
}

type OrderItemSnapshot struct {
	ProductID   ProductID
	ProductName string
	UnitPrice   Money
	Quantity    int
}

// Snapshot captures the current aggregate state for persistence.
func (o *Order) Snapshot() OrderSnapshot {
	items := make([]OrderItemSnapshot, 0, len(o.items))
	for _, item := range o.items {
		items = append(items, OrderItemSnapshot{
			ProductID:   item.productID,
			ProductName: item.productName,
			UnitPrice:   item.unitPrice,
			Quantity:    item.quantity,
		})
	}
	return OrderSnapshot{
		ID:              o.id,
		CustomerID:      o.customerID,
		Status:          o.status,
		ShippingAddress: o.shippingAddress,
		BillingAddress:  o.billingAddress,
		Version:         o.version,
		Revision:        o.revision,
		CreatedAt:       o.createdAt,
		ModifiedAt:      o.modifiedAt,
		Items:           items,
	}
}

// RestoreOrder rebuilds an aggregate from its durable form. The
// restored copy starts with an empty event buffer and remembers the
// stored revision for the optimistic concurrency check on save.
func RestoreOrder(snapshot OrderSnapshot) (*Order, error) {
	if snapshot.ID == "" {
		return nil, validationError("order id cannot be empty")
	}
	if snapshot.CustomerID == "" {
		return nil, validationError("customer id cannot be empty")
	}
	if _, known := orderTransitions[snapshot.Status]; !known {
		return nil, validationError("unknown order status %q", snapshot.Status)
	}

	items := make([]OrderItem, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		items = append(items, OrderItem{
			productID:   item.ProductID,
			productName: item.ProductName,
			unitPrice:   item.UnitPrice,
			quantity:    item.Quantity,
		})
	}

	order := &Order{
		id:              snapshot.ID,
		customerID:      snapshot.CustomerID,
		items:           items,
		status:          snapshot.Status,
		shippingAddress: snapshot.ShippingAddress,
		billingAddress:  snapshot.BillingAddress,
		version:         snapshot.Version,
		savedVersion:    snapshot.Version,
		revision:        snapshot.Revision,
		createdAt:       snapshot.CreatedAt,
		modifiedAt:      snapshot.ModifiedAt,
	}
	if err := order.checkInvariants(); err != nil {
		return nil, err
	}
	return order, nil
}

// OrderSummary is a read-only projection for listing queries. It never
// carries enough state to save an order, so it cannot be used to bypass
// the revision check.
type OrderSummary struct {
	ID         OrderID
	CustomerID CustomerID
	Status     OrderStatus
	Total      Money
	LineCount  int
	ModifiedAt time.Time
}
