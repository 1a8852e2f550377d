package port

import (
	"context"

	"github.com/mirstone/ordermart/internal/core/domain"
)

//go:generate mockgen -source=publisher.go -destination=mock/publisher.go -package=mock

// EventPublisher hands committed domain events to the outside world.
// Delivery is best-effort and at-least-once; a publish failure never
// rolls back the state change that produced the events.
type EventPublisher interface {
	Publish(ctx context.Context, events []domain.Event) error
}
