package port

import "github.com/mirstone/ordermart/internal/core/domain"

//go:generate mockgen -source=identity.go -destination=mock/identity.go -package=mock

// IdentityGenerator allocates aggregate identities. Injecting it keeps
// id allocation out of the aggregate and deterministic in tests.
type IdentityGenerator interface {
	NewOrderID() domain.OrderID
}
