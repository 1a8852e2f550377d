package identity

import (
	"github.com/google/uuid"
	"github.com/mirstone/ordermart/internal/core/domain"
)

// UUIDGenerator implements port.IdentityGenerator with random v4 uuids.
type UUIDGenerator struct{}

func NewUUIDGenerator() UUIDGenerator { return UUIDGenerator{} }

func (UUIDGenerator) NewOrderID() domain.OrderID {
	return domain.OrderID(uuid.NewString())
}
