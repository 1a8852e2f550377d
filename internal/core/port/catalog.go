package port

import (
	"context"

	"github.com/mirstone/ordermart/internal/core/domain"
)

//go:generate mockgen -source=catalog.go -destination=mock/catalog.go -package=mock

// ProductCatalog looks up products in the catalog bounded context.
// Returns domain.ErrNotFound for unknown products.
type ProductCatalog interface {
	GetProduct(ctx context.Context, id domain.ProductID) (*domain.Product, error)
}
