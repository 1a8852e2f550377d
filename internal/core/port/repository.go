package port

import (
	"context"

	"github.com/mirstone/ordermart/internal/core/domain"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

// OrderRepository owns the mapping between an Order aggregate and its
// durable form. Save is atomic over the order row and all item rows and
// fails with domain.ErrConcurrencyConflict when the stored revision no
// longer matches the revision the aggregate was loaded at. The revision
// advances on every save, so draft edits conflict too, not just
// lifecycle transitions.
//
// The listing queries return read-only projections. To mutate an order,
// always load a fresh aggregate through FindByID first.
type OrderRepository interface {
	// NextIdentity allocates a new unique order id without a storage
	// round-trip.
	NextIdentity() domain.OrderID

	FindByID(ctx context.Context, id domain.OrderID) (*domain.Order, error)
	Save(ctx context.Context, order *domain.Order) error
	Exists(ctx context.Context, id domain.OrderID) (bool, error)

	ListByCustomer(ctx context.Context, customerID domain.CustomerID) ([]domain.OrderSummary, error)
	ListByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.OrderSummary, error)
}
