package domain

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "DRAFT"
	OrderStatusPlaced    OrderStatus = "PLACED"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusReturned  OrderStatus = "RETURNED"
)

// MaxOrderItems caps the total quantity across all lines of one order.
const MaxOrderItems = 50

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusDraft:     {OrderStatusPlaced, OrderStatusCancelled},
	OrderStatusPlaced:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered: {OrderStatusReturned},
	OrderStatusCancelled: {},
	OrderStatusReturned:  {},
}

// OrderItem is an entity owned by one Order. It has no identity outside
// its aggregate and can only be changed through Order methods.
type OrderItem struct {
	productID   ProductID
	productName string
	unitPrice   Money
	quantity    int
}

func (i OrderItem) ProductID() ProductID { return i.productID }

func (i OrderItem) ProductName() string { return i.productName }

func (i OrderItem) UnitPrice() Money { return i.unitPrice }

func (i OrderItem) Quantity() int { return i.quantity }

func (i OrderItem) LineTotal() (Money, error) {
	return i.unitPrice.Mul(i.quantity)
}

// Order is the aggregate root of the ordering consistency boundary.
// All fields are private; every mutation goes through a method that
// re-validates the aggregate invariants and either applies completely
// or leaves the order untouched.
//
// Mutating methods take the current time as a plain value so the
// aggregate stays deterministic under test. The aggregate never touches
// a clock, a repository or the network.
type Order struct {
	id              OrderID
	customerID      CustomerID
	items           []OrderItem
	status          OrderStatus
	shippingAddress *Address
	billingAddress  *Address

	// version counts lifecycle transitions; savedVersion is the
	// version the durable record had when this copy was loaded.
	version      int64
	savedVersion int64

	// revision counts successful saves and backs the optimistic
	// concurrency check. Unlike version it advances on every write,
	// so concurrent draft edits conflict too.
	revision int64

	createdAt  time.Time
	modifiedAt time.Time

	events []Event
}

// NewOrder creates a Draft order with no items.
func NewOrder(id OrderID, customerID CustomerID, now time.Time) (*Order, error) {
	if id == "" {
		return nil, validationError("order id cannot be empty")
	}
	if customerID == "" {
		return nil, validationError("customer id cannot be empty")
	}
	return &Order{
		id:         id,
		customerID: customerID,
		status:     OrderStatusDraft,
		createdAt:  now,
		modifiedAt: now,
	}, nil
}

func (o *Order) ID() OrderID { return o.id }

func (o *Order) CustomerID() CustomerID { return o.customerID }

func (o *Order) Status() OrderStatus { return o.status }

func (o *Order) Version() int64 { return o.version }

// SavedVersion is the version the repository loaded this copy at.
func (o *Order) SavedVersion() int64 { return o.savedVersion }

// Revision is the save counter of the durable record this copy was
// loaded at, zero for a never-persisted aggregate. The persistence
// layer compares it against the stored record on save.
func (o *Order) Revision() int64 { return o.revision }

// MarkSaved records that the current state has been persisted. Only the
// repository calls this, after a successful write.
func (o *Order) MarkSaved() {
	o.savedVersion = o.version
	o.revision++
}

func (o *Order) CreatedAt() time.Time { return o.createdAt }

func (o *Order) ModifiedAt() time.Time { return o.modifiedAt }

// Items returns a read-only view of the order lines. Callers must not
// modify the returned slice.
func (o *Order) Items() []OrderItem { return o.items }

// ItemCount is the total quantity across all lines.
func (o *Order) ItemCount() int {
	count := 0
	for _, item := range o.items {
		count += item.quantity
	}
	return count
}

func (o *Order) ShippingAddress() (Address, bool) {
	if o.shippingAddress == nil {
		return Address{}, false
	}
	return *o.shippingAddress, true
}

func (o *Order) BillingAddress() (Address, bool) {
	if o.billingAddress == nil {
		return Address{}, false
	}
	return *o.billingAddress, true
}

// Total is the sum of all line totals. It is always derived, never
// stored. An order without items has a zero total with no currency.
func (o *Order) Total() (Money, error) {
	var total Money
	for idx, item := range o.items {
		line, err := item.LineTotal()
		if err != nil {
			return Money{}, err
		}
		if idx == 0 {
			total = line
			continue
		}
		total, err = total.Add(line)
		if err != nil {
			return Money{}, err
		}
	}
	return total, nil
}

// AddItem adds quantity units of a product to a Draft order. A line for
// the same product accumulates quantity instead of duplicating.
func (o *Order) AddItem(product Product, quantity int, now time.Time) error {
	if err := o.requireDraft(); err != nil {
		return err
	}
	if quantity <= 0 {
		return validationError("quantity must be positive, got %d", quantity)
	}
	if !product.IsAvailable {
		return invariantError("product %s is not available", product.ID)
	}

	items := o.copyItems()
	merged := false
	for idx := range items {
		if items[idx].productID == product.ID {
			items[idx].quantity += quantity
			if items[idx].quantity > product.StockQuantity {
				return invariantError("requested quantity %d of product %s exceeds stock %d",
					items[idx].quantity, product.ID, product.StockQuantity)
			}
			merged = true
			break
		}
	}
	if !merged {
		if quantity > product.StockQuantity {
			return invariantError("requested quantity %d of product %s exceeds stock %d",
				quantity, product.ID, product.StockQuantity)
		}
		items = append(items, OrderItem{
			productID:   product.ID,
			productName: product.Name,
			unitPrice:   product.Price,
			quantity:    quantity,
		})
	}

	return o.applyItems(items, now)
}

func (o *Order) RemoveItem(productID ProductID, now time.Time) error {
	if err := o.requireDraft(); err != nil {
		return err
	}
	idx := o.findItem(productID)
	if idx < 0 {
		return fmt.Errorf("%w: product %s is not in the order", ErrNotFound, productID)
	}
	items := o.copyItems()
	items = append(items[:idx], items[idx+1:]...)
	return o.applyItems(items, now)
}

func (o *Order) UpdateItemQuantity(productID ProductID, quantity int, now time.Time) error {
	if err := o.requireDraft(); err != nil {
		return err
	}
	idx := o.findItem(productID)
	if idx < 0 {
		return fmt.Errorf("%w: product %s is not in the order", ErrNotFound, productID)
	}
	items := o.copyItems()
	items[idx].quantity = quantity
	return o.applyItems(items, now)
}

func (o *Order) SetShippingAddress(address Address, now time.Time) error {
	if err := o.requireDraft(); err != nil {
		return err
	}
	o.shippingAddress = &address
	o.modifiedAt = now
	return nil
}

func (o *Order) SetBillingAddress(address Address, now time.Time) error {
	if err := o.requireDraft(); err != nil {
		return err
	}
	o.billingAddress = &address
	o.modifiedAt = now
	return nil
}

// Place moves a Draft order to Placed and emits OrderPlaced. The order
// must have at least one item, a shipping address and a positive total.
func (o *Order) Place(now time.Time) error {
	if err := o.requireTransition(OrderStatusPlaced); err != nil {
		return err
	}
	if len(o.items) == 0 {
		return invariantError("cannot place an order without items")
	}
	if o.shippingAddress == nil {
		return invariantError("cannot place an order without a shipping address")
	}
	total, err := o.Total()
	if err != nil {
		return err
	}
	if !total.IsPositive() {
		return invariantError("order total must be positive")
	}

	o.transition(OrderStatusPlaced, now)

	event := newEvent(EventOrderPlaced, o.id, now)
	event.Placed = &OrderPlacedPayload{
		CustomerID: o.customerID,
		Total:      total.Amount().String(),
		Currency:   total.Currency(),
		Items:      o.itemSnapshots(),
	}
	o.events = append(o.events, event)
	return nil
}

func (o *Order) Confirm(now time.Time) error {
	if err := o.requireTransition(OrderStatusConfirmed); err != nil {
		return err
	}
	o.transition(OrderStatusConfirmed, now)
	o.events = append(o.events, newEvent(EventOrderConfirmed, o.id, now))
	return nil
}

func (o *Order) StartPreparing(now time.Time) error {
	if err := o.requireTransition(OrderStatusPreparing); err != nil {
		return err
	}
	o.transition(OrderStatusPreparing, now)
	o.events = append(o.events, newEvent(EventOrderPreparing, o.id, now))
	return nil
}

func (o *Order) Ship(trackingNumber, carrier string, now time.Time) error {
	if err := o.requireTransition(OrderStatusShipped); err != nil {
		return err
	}
	if trackingNumber == "" {
		return validationError("tracking number cannot be empty")
	}
	if carrier == "" {
		return validationError("carrier cannot be empty")
	}
	o.transition(OrderStatusShipped, now)

	event := newEvent(EventOrderShipped, o.id, now)
	event.Shipped = &OrderShippedPayload{TrackingNumber: trackingNumber, Carrier: carrier}
	o.events = append(o.events, event)
	return nil
}

func (o *Order) Deliver(now time.Time) error {
	if err := o.requireTransition(OrderStatusDelivered); err != nil {
		return err
	}
	o.transition(OrderStatusDelivered, now)
	o.events = append(o.events, newEvent(EventOrderDelivered, o.id, now))
	return nil
}

func (o *Order) Cancel(reason string, now time.Time) error {
	if err := o.requireTransition(OrderStatusCancelled); err != nil {
		return err
	}
	o.transition(OrderStatusCancelled, now)

	event := newEvent(EventOrderCancelled, o.id, now)
	event.Cancelled = &OrderCancelledPayload{Reason: reason}
	o.events = append(o.events, event)
	return nil
}

func (o *Order) Return(now time.Time) error {
	if err := o.requireTransition(OrderStatusReturned); err != nil {
		return err
	}
	o.transition(OrderStatusReturned, now)
	o.events = append(o.events, newEvent(EventOrderReturned, o.id, now))
	return nil
}

// DomainEvents returns a read-only view of the queued events.
func (o *Order) DomainEvents() []Event { return o.events }

// ClearDomainEvents returns the queued events and empties the buffer.
// The unit of work drains it exactly once per successful commit;
// draining without a commit loses the events.
func (o *Order) ClearDomainEvents() []Event {
	events := o.events
	o.events = nil
	return events
}

func (o *Order) requireDraft() error {
	if o.status != OrderStatusDraft {
		return invariantError("order cannot be modified in status %s", o.status)
	}
	return nil
}

func (o *Order) requireTransition(target OrderStatus) error {
	for _, allowed := range orderTransitions[o.status] {
		if allowed == target {
			return nil
		}
	}
	return fmt.Errorf("%w: cannot move order from %s to %s", ErrInvalidTransition, o.status, target)
}

func (o *Order) transition(target OrderStatus, now time.Time) {
	o.status = target
	o.version++
	o.modifiedAt = now
}

func (o *Order) findItem(productID ProductID) int {
	for idx, item := range o.items {
		if item.productID == productID {
			return idx
		}
	}
	return -1
}

func (o *Order) copyItems() []OrderItem {
	items := make([]OrderItem, len(o.items))
	copy(items, o.items)
	return items
}

// applyItems swaps in a candidate item list, re-validates every
// aggregate invariant and rolls the swap back on violation.
func (o *Order) applyItems(items []OrderItem, now time.Time) error {
	previous := o.items
	o.items = items
	if err := o.checkInvariants(); err != nil {
		o.items = previous
		return err
	}
	o.modifiedAt = now
	return nil
}

func (o *Order) checkInvariants() error {
	count := 0
	for _, item := range o.items {
		if item.quantity <= 0 {
			return invariantError("item quantity must be positive, got %d for product %s",
				item.quantity, item.productID)
		}
		count += item.quantity
	}
	if count > MaxOrderItems {
		return invariantError("order holds %d items, limit is %d", count, MaxOrderItems)
	}
	if o.status != OrderStatusDraft {
		if o.shippingAddress == nil {
			return invariantError("non-draft order must have a shipping address")
		}
		total, err := o.Total()
		if err != nil {
			return err
		}
		if !total.IsPositive() {
			return invariantError("non-draft order must have a positive total")
		}
	}
	return nil
}

func (o *Order) itemSnapshots() []ItemSnapshot {
	snapshots := make([]ItemSnapshot, 0, len(o.items))
	for _, item := range o.items {
		snapshots = append(snapshots, ItemSnapshot{
			ProductID:   item.productID,
			ProductName: item.productName,
			UnitPrice:   item.unitPrice.Amount().String(),
			Quantity:    item.quantity,
		})
	}
	return snapshots
}
