package domain_test

import (
	"testing"
	"time"

	"github.com/govalues/decimal"
	"github.com/mirstone/ordermart/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testProduct(t *testing.T, id, price string, stock int) domain.Product {
	t.Helper()
	return domain.Product{
		ID:            domain.ProductID(id),
		Name:          "product " + id,
		Price:         money(t, price, "USD"),
		IsAvailable:   true,
		StockQuantity: stock,
	}
}

func testAddress(t *testing.T) domain.Address {
	t.Helper()
	address, err := domain.NewAddress("1 Main St", "Springfield", "IL", "62704", "US")
	require.NoError(t, err)
	return address
}

func draftOrder(t *testing.T) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder("o1", "c1", testNow)
	require.NoError(t, err)
	return order
}

// readyOrder is a draft with one $50 x2 line and a shipping address,
// ready to be placed.
func readyOrder(t *testing.T) *domain.Order {
	t.Helper()
	order := draftOrder(t)
	require.NoError(t, order.AddItem(testProduct(t, "p1", "50.00", 10), 2, testNow))
	require.NoError(t, order.SetShippingAddress(testAddress(t), testNow))
	return order
}

// orderInStatus rebuilds an order in an arbitrary lifecycle state the
// way a repository would.
func orderInStatus(t *testing.T, status domain.OrderStatus) *domain.Order {
	t.Helper()
	address := testAddress(t)
	order, err := domain.RestoreOrder(domain.OrderSnapshot{
		ID:              "o1",
		CustomerID:      "c1",
		Status:          status,
		ShippingAddress: &address,
		Version:         3,
		Revision:        4,
		CreatedAt:       testNow,
		ModifiedAt:      testNow,
		Items: []domain.OrderItemSnapshot{
			{ProductID: "p1", ProductName: "product p1", UnitPrice: money(t, "50.00", "USD"), Quantity: 2},
		},
	})
	require.NoError(t, err)
	return order
}

func TestNewOrder(t *testing.T) {
	order := draftOrder(t)

	assert.Equal(t, domain.OrderStatusDraft, order.Status())
	assert.Equal(t, int64(0), order.Version())
	assert.Empty(t, order.Items())
	assert.Empty(t, order.DomainEvents())

	_, err := domain.NewOrder("", "c1", testNow)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = domain.NewOrder("o1", "", testNow)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestOrder_AddItem(t *testing.T) {
	t.Run("merges lines for the same product", func(t *testing.T) {
		order := draftOrder(t)
		product := testProduct(t, "p1", "50.00", 10)

		assert.NoError(t, order.AddItem(product, 2, testNow))
		assert.NoError(t, order.AddItem(product, 3, testNow))

		require.Len(t, order.Items(), 1)
		assert.Equal(t, 5, order.Items()[0].Quantity())
		assert.Equal(t, 5, order.ItemCount())
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		order := draftOrder(t)
		err := order.AddItem(testProduct(t, "p1", "50.00", 10), 0, testNow)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Empty(t, order.Items())
	})

	t.Run("rejects unavailable product", func(t *testing.T) {
		order := draftOrder(t)
		product := testProduct(t, "p1", "50.00", 10)
		product.IsAvailable = false

		err := order.AddItem(product, 1, testNow)
		assert.ErrorIs(t, err, domain.ErrInvariantViolation)
	})

	t.Run("rejects quantity above stock", func(t *testing.T) {
		order := draftOrder(t)
		product := testProduct(t, "p1", "50.00", 4)

		assert.NoError(t, order.AddItem(product, 3, testNow))
		err := order.AddItem(product, 2, testNow)
		assert.ErrorIs(t, err, domain.ErrInvariantViolation)
		assert.Equal(t, 3, order.ItemCount())
	})

	t.Run("enforces the item limit", func(t *testing.T) {
		order := draftOrder(t)
		product := testProduct(t, "p1", "1.00", 100)

		assert.NoError(t, order.AddItem(product, domain.MaxOrderItems, testNow))
		err := order.AddItem(product, 1, testNow)
		assert.ErrorIs(t, err, domain.ErrInvariantViolation)
		assert.Equal(t, domain.MaxOrderItems, order.ItemCount())
	})

	t.Run("rejected outside draft", func(t *testing.T) {
		order := readyOrder(t)
		require.NoError(t, order.Place(testNow))

		err := order.AddItem(testProduct(t, "p2", "10.00", 10), 1, testNow)
		assert.ErrorIs(t, err, domain.ErrInvariantViolation)
		assert.Contains(t, err.Error(), "order cannot be modified")
		assert.Len(t, order.Items(), 1)
		assert.Equal(t, domain.OrderStatusPlaced, order.Status())
	})
}

func TestOrder_RemoveItem(t *testing.T) {
	order := draftOrder(t)
	require.NoError(t, order.AddItem(testProduct(t, "p1", "50.00", 10), 2, testNow))

	err := order.RemoveItem("missing", testNow)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, order.RemoveItem("p1", testNow))
	assert.Empty(t, order.Items())
}

func TestOrder_UpdateItemQuantity(t *testing.T) {
	order := draftOrder(t)
	require.NoError(t, order.AddItem(testProduct(t, "p1", "50.00", 10), 2, testNow))

	err := order.UpdateItemQuantity("missing", 1, testNow)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// full invariant re-validation rolls the change back
	err = order.UpdateItemQuantity("p1", 0, testNow)
	assert.ErrorIs(t, err, domain.ErrInvariantViolation)
	assert.Equal(t, 2, order.Items()[0].Quantity())

	err = order.UpdateItemQuantity("p1", domain.MaxOrderItems+1, testNow)
	assert.ErrorIs(t, err, domain.ErrInvariantViolation)
	assert.Equal(t, 2, order.Items()[0].Quantity())

	assert.NoError(t, order.UpdateItemQuantity("p1", 7, testNow))
	assert.Equal(t, 7, order.Items()[0].Quantity())
}

func TestOrder_Total(t *testing.T) {
	order := draftOrder(t)

	total, err := order.Total()
	assert.NoError(t, err)
	assert.True(t, total.IsZero())

	require.NoError(t, order.AddItem(testProduct(t, "p1", "50.00", 10), 2, testNow))
	require.NoError(t, order.AddItem(testProduct(t, "p2", "9.95", 10), 3, testNow))

	total, err = order.Total()
	assert.NoError(t, err)
	assert.True(t, total.Equal(money(t, "129.85", "USD")))
}

func TestOrder_Place(t *testing.T) {
	t.Run("scenario", func(t *testing.T) {
		order := draftOrder(t)
		require.NoError(t, order.AddItem(testProduct(t, "p1", "50.00", 10), 2, testNow))

		total, err := order.Total()
		require.NoError(t, err)
		assert.True(t, total.Equal(money(t, "100.00", "USD")))

		require.NoError(t, order.SetShippingAddress(testAddress(t), testNow))
		require.NoError(t, order.Place(testNow))

		assert.Equal(t, domain.OrderStatusPlaced, order.Status())
		assert.Equal(t, int64(1), order.Version())

		events := order.DomainEvents()
		require.Len(t, events, 1)
		event := events[0]
		assert.Equal(t, domain.EventOrderPlaced, event.Kind)
		assert.Equal(t, domain.OrderID("o1"), event.OrderID)
		assert.NotEmpty(t, event.ID)
		assert.Equal(t, testNow, event.OccurredAt)

		require.NotNil(t, event.Placed)
		assert.Equal(t, domain.CustomerID("c1"), event.Placed.CustomerID)
		assert.Equal(t, "USD", event.Placed.Currency)
		assert.Equal(t, 0, decimal.MustParse(event.Placed.Total).Cmp(decimal.MustParse("100")))
		require.Len(t, event.Placed.Items, 1)
		assert.Equal(t, domain.ProductID("p1"), event.Placed.Items[0].ProductID)
		assert.Equal(t, 2, event.Placed.Items[0].Quantity)
	})

	t.Run("requires items", func(t *testing.T) {
		order := draftOrder(t)
		require.NoError(t, order.SetShippingAddress(testAddress(t), testNow))

		err := order.Place(testNow)
		assert.ErrorIs(t, err, domain.ErrInvariantViolation)
		assert.Equal(t, domain.OrderStatusDraft, order.Status())
		assert.Equal(t, int64(0), order.Version())
		assert.Empty(t, order.DomainEvents())
	})

	t.Run("requires a shipping address", func(t *testing.T) {
		order := draftOrder(t)
		require.NoError(t, order.AddItem(testProduct(t, "p1", "50.00", 10), 2, testNow))

		err := order.Place(testNow)
		assert.ErrorIs(t, err, domain.ErrInvariantViolation)
		assert.Equal(t, domain.OrderStatusDraft, order.Status())
		assert.Empty(t, order.DomainEvents())
	})

	t.Run("cannot place twice", func(t *testing.T) {
		order := readyOrder(t)
		require.NoError(t, order.Place(testNow))

		err := order.Place(testNow)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.Equal(t, int64(1), order.Version())
	})
}

func TestOrder_SetAddresses(t *testing.T) {
	order := readyOrder(t)
	require.NoError(t, order.SetBillingAddress(testAddress(t), testNow))
	require.NoError(t, order.Place(testNow))

	err := order.SetShippingAddress(testAddress(t), testNow)
	assert.ErrorIs(t, err, domain.ErrInvariantViolation)
	err = order.SetBillingAddress(testAddress(t), testNow)
	assert.ErrorIs(t, err, domain.ErrInvariantViolation)

	address, ok := order.ShippingAddress()
	assert.True(t, ok)
	assert.True(t, address.Equal(testAddress(t)))
	_, ok = order.BillingAddress()
	assert.True(t, ok)
}

func TestOrder_TransitionMatrix(t *testing.T) {
	operations := []struct {
		name   string
		target domain.OrderStatus
		invoke func(order *domain.Order) error
	}{
		{"place", domain.OrderStatusPlaced, func(o *domain.Order) error { return o.Place(testNow) }},
		{"confirm", domain.OrderStatusConfirmed, func(o *domain.Order) error { return o.Confirm(testNow) }},
		{"prepare", domain.OrderStatusPreparing, func(o *domain.Order) error { return o.StartPreparing(testNow) }},
		{"ship", domain.OrderStatusShipped, func(o *domain.Order) error { return o.Ship("TRK-1", "UPS", testNow) }},
		{"deliver", domain.OrderStatusDelivered, func(o *domain.Order) error { return o.Deliver(testNow) }},
		{"cancel", domain.OrderStatusCancelled, func(o *domain.Order) error { return o.Cancel("changed my mind", testNow) }},
		{"return", domain.OrderStatusReturned, func(o *domain.Order) error { return o.Return(testNow) }},
	}

	allowed := map[domain.OrderStatus]map[domain.OrderStatus]bool{
		domain.OrderStatusDraft:     {domain.OrderStatusPlaced: true, domain.OrderStatusCancelled: true},
		domain.OrderStatusPlaced:    {domain.OrderStatusConfirmed: true, domain.OrderStatusCancelled: true},
		domain.OrderStatusConfirmed: {domain.OrderStatusPreparing: true, domain.OrderStatusCancelled: true},
		domain.OrderStatusPreparing: {domain.OrderStatusShipped: true, domain.OrderStatusCancelled: true},
		domain.OrderStatusShipped:   {domain.OrderStatusDelivered: true, domain.OrderStatusCancelled: true},
		domain.OrderStatusDelivered: {domain.OrderStatusReturned: true},
		domain.OrderStatusCancelled: {},
		domain.OrderStatusReturned:  {},
	}

	for status, targets := range allowed {
		for _, operation := range operations {
			t.Run(string(status)+"_"+operation.name, func(t *testing.T) {
				order := orderInStatus(t, status)

				err := operation.invoke(order)
				if targets[operation.target] {
					assert.NoError(t, err)
					assert.Equal(t, operation.target, order.Status())
					assert.Equal(t, int64(4), order.Version())
					assert.Len(t, order.DomainEvents(), 1)
					return
				}

				assert.ErrorIs(t, err, domain.ErrInvalidTransition)
				assert.Equal(t, status, order.Status())
				assert.Equal(t, int64(3), order.Version())
				assert.Empty(t, order.DomainEvents())
			})
		}
	}
}

func TestOrder_LifecycleEvents(t *testing.T) {
	order := readyOrder(t)

	require.NoError(t, order.Place(testNow))
	require.NoError(t, order.Confirm(testNow))
	require.NoError(t, order.StartPreparing(testNow))
	require.NoError(t, order.Ship("TRK-42", "DHL", testNow))
	require.NoError(t, order.Deliver(testNow))
	require.NoError(t, order.Return(testNow))

	events := order.DomainEvents()
	require.Len(t, events, 6)
	kinds := make([]domain.EventKind, 0, len(events))
	for _, event := range events {
		kinds = append(kinds, event.Kind)
	}
	assert.Equal(t, []domain.EventKind{
		domain.EventOrderPlaced,
		domain.EventOrderConfirmed,
		domain.EventOrderPreparing,
		domain.EventOrderShipped,
		domain.EventOrderDelivered,
		domain.EventOrderReturned,
	}, kinds)

	require.NotNil(t, events[3].Shipped)
	assert.Equal(t, "TRK-42", events[3].Shipped.TrackingNumber)
	assert.Equal(t, "DHL", events[3].Shipped.Carrier)

	assert.Equal(t, int64(6), order.Version())
}

func TestOrder_CancelEvent(t *testing.T) {
	order := readyOrder(t)
	require.NoError(t, order.Cancel("out of stock", testNow))

	events := order.DomainEvents()
	require.Len(t, events, 1)
	require.NotNil(t, events[0].Cancelled)
	assert.Equal(t, "out of stock", events[0].Cancelled.Reason)
}

func TestOrder_ClearDomainEvents(t *testing.T) {
	order := readyOrder(t)
	require.NoError(t, order.Place(testNow))

	events := order.ClearDomainEvents()
	require.Len(t, events, 1)
	assert.Empty(t, order.DomainEvents())
	assert.Empty(t, order.ClearDomainEvents())
}

// After every operation the derived total must equal the sum of line
// totals and the item count must stay within the limit.
func TestOrder_InvariantClosure(t *testing.T) {
	order := draftOrder(t)

	check := func() {
		t.Helper()
		total, err := order.Total()
		require.NoError(t, err)

		var sum domain.Money
		for idx, item := range order.Items() {
			line, err := item.LineTotal()
			require.NoError(t, err)
			if idx == 0 {
				sum = line
				continue
			}
			sum, err = sum.Add(line)
			require.NoError(t, err)
		}
		assert.True(t, total.Equal(sum) || (total.IsZero() && len(order.Items()) == 0))
		assert.LessOrEqual(t, order.ItemCount(), domain.MaxOrderItems)
	}

	steps := []func() error{
		func() error { return order.AddItem(testProduct(t, "p1", "50.00", 30), 2, testNow) },
		func() error { return order.AddItem(testProduct(t, "p2", "9.95", 30), 5, testNow) },
		func() error { return order.AddItem(testProduct(t, "p1", "50.00", 30), 8, testNow) },
		func() error { return order.UpdateItemQuantity("p2", 1, testNow) },
		func() error { return order.RemoveItem("p1", testNow) },
		func() error { return order.AddItem(testProduct(t, "p3", "0.99", 60), 49, testNow) },
		func() error { return order.SetShippingAddress(testAddress(t), testNow) },
		func() error { return order.Place(testNow) },
	}
	for _, step := range steps {
		require.NoError(t, step())
		check()
	}
}

func TestRestoreOrder(t *testing.T) {
	order := orderInStatus(t, domain.OrderStatusConfirmed)

	assert.Equal(t, domain.OrderID("o1"), order.ID())
	assert.Equal(t, domain.OrderStatusConfirmed, order.Status())
	assert.Equal(t, int64(3), order.Version())
	assert.Equal(t, int64(3), order.SavedVersion())
	assert.Equal(t, int64(4), order.Revision())
	assert.Empty(t, order.DomainEvents())

	_, err := domain.RestoreOrder(domain.OrderSnapshot{
		ID:         "o1",
		CustomerID: "c1",
		Status:     "BOGUS",
		CreatedAt:  testNow,
		ModifiedAt: testNow,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestOrder_MarkSaved(t *testing.T) {
	order := readyOrder(t)
	assert.Equal(t, int64(0), order.SavedVersion())
	assert.Equal(t, int64(0), order.Revision())

	require.NoError(t, order.Place(testNow))
	assert.Equal(t, int64(1), order.Version())
	assert.Equal(t, int64(0), order.SavedVersion())

	order.MarkSaved()
	assert.Equal(t, int64(1), order.SavedVersion())
	assert.Equal(t, int64(1), order.Revision())
}

// Draft edits do not bump the transition counter, but every save must
// advance the revision so a stale copy can never pass the guard.
func TestOrder_RevisionAdvancesWithoutTransition(t *testing.T) {
	order := readyOrder(t)
	order.MarkSaved()
	require.Equal(t, int64(1), order.Revision())

	require.NoError(t, order.AddItem(testProduct(t, "p2", "10.00", 10), 1, testNow))
	assert.Equal(t, int64(0), order.Version())
	order.MarkSaved()
	assert.Equal(t, int64(2), order.Revision())

	restored, err := domain.RestoreOrder(order.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, int64(2), restored.Revision())
	assert.Equal(t, int64(0), restored.Version())
}
