package port

import (
	"context"

	"github.com/mirstone/ordermart/internal/core/domain"
)

// OrderLine is one requested product/quantity pair in an inbound
// command.
type OrderLine struct {
	ProductID domain.ProductID
	Quantity  int
}

// Service is the application-facing surface of the order context. Each
// mutating call maps to one unit-of-work cycle against one aggregate.
type Service interface {
	CreateOrder(ctx context.Context, customerID domain.CustomerID, lines []OrderLine, shipping *domain.Address) (*domain.Order, error)

	AddItem(ctx context.Context, orderID domain.OrderID, productID domain.ProductID, quantity int) (*domain.Order, error)
	RemoveItem(ctx context.Context, orderID domain.OrderID, productID domain.ProductID) (*domain.Order, error)
	UpdateItemQuantity(ctx context.Context, orderID domain.OrderID, productID domain.ProductID, quantity int) (*domain.Order, error)
	SetShippingAddress(ctx context.Context, orderID domain.OrderID, address domain.Address) (*domain.Order, error)
	SetBillingAddress(ctx context.Context, orderID domain.OrderID, address domain.Address) (*domain.Order, error)

	PlaceOrder(ctx context.Context, orderID domain.OrderID) (*domain.Order, error)
	ConfirmOrder(ctx context.Context, orderID domain.OrderID) (*domain.Order, error)
	StartPreparing(ctx context.Context, orderID domain.OrderID) (*domain.Order, error)
	ShipOrder(ctx context.Context, orderID domain.OrderID, trackingNumber, carrier string) (*domain.Order, error)
	DeliverOrder(ctx context.Context, orderID domain.OrderID) (*domain.Order, error)
	CancelOrder(ctx context.Context, orderID domain.OrderID, reason string) (*domain.Order, error)
	ReturnOrder(ctx context.Context, orderID domain.OrderID) (*domain.Order, error)

	GetOrder(ctx context.Context, orderID domain.OrderID) (*domain.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID domain.CustomerID) ([]domain.OrderSummary, error)
	ListOrdersByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.OrderSummary, error)
}
