package service

import (
	"context"

	"github.com/mirstone/ordermart/internal/core/domain"
	"github.com/mirstone/ordermart/internal/core/port"
	"go.uber.org/zap"
)

// Coordinator is the unit of work for order aggregates. One Execute
// call is one business operation: load the aggregate, apply the
// mutation, save atomically, then flush the queued domain events.
//
// The repository's Save provides the transaction; an error anywhere
// before it leaves no persisted trace. Event publication happens after
// the commit and is best-effort: a failed publish is logged and the
// committed state stands.
type Coordinator struct {
	repo      port.OrderRepository
	publisher port.EventPublisher
	logger    *zap.Logger
}

func NewCoordinator(repo port.OrderRepository, publisher port.EventPublisher, logger *zap.Logger) (*Coordinator, error) {
	return &Coordinator{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}, nil
}

func (c *Coordinator) Execute(ctx context.Context, id domain.OrderID,
	mutate func(order *domain.Order) error) (*domain.Order, error) {
	order, err := c.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := mutate(order); err != nil {
		return nil, err
	}

	if err := c.repo.Save(ctx, order); err != nil {
		return nil, err
	}

	c.flushEvents(ctx, order)
	return order, nil
}

func (c *Coordinator) ExecuteNew(ctx context.Context,
	create func() (*domain.Order, error)) (*domain.Order, error) {
	order, err := create()
	if err != nil {
		return nil, err
	}

	if err := c.repo.Save(ctx, order); err != nil {
		return nil, err
	}

	c.flushEvents(ctx, order)
	return order, nil
}

func (c *Coordinator) flushEvents(ctx context.Context, order *domain.Order) {
	events := order.ClearDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := c.publisher.Publish(ctx, events); err != nil {
		c.logger.Error("publish domain events",
			zap.String("order", order.ID().String()),
			zap.Int("events", len(events)),
			zap.Error(err))
	}
}
