package port

import (
	"context"

	"github.com/mirstone/ordermart/internal/core/domain"
)

//go:generate mockgen -source=uow.go -destination=mock/uow.go -package=mock

// UnitOfWork runs one load-mutate-save cycle against exactly one order
// aggregate. Any error from the mutate function or the save aborts the
// cycle with nothing persisted. After a successful save the queued
// domain events are drained and published; publication failures are
// logged, not rolled back.
type UnitOfWork interface {
	Execute(ctx context.Context, id domain.OrderID, mutate func(order *domain.Order) error) (*domain.Order, error)
	ExecuteNew(ctx context.Context, create func() (*domain.Order, error)) (*domain.Order, error)
}
