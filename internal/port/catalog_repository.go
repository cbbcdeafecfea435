package port

import (
	"context"

	"github.com/dparedes/techstore/internal/core/domain"
)

type CatalogRepository interface {
	// FindByID retrieves a product by ID, returning (nil, nil) when the
	// product does not exist.
	FindByID(ctx context.Context, id int64) (*domain.Product, error)

	// All returns every product in the catalog.
	All(ctx context.Context) ([]domain.Product, error)

	// DecrementStock atomically subtracts qty from the product's stock and
	// recomputes its in-stock flag. Returns false without mutation when the
	// product is unknown or stock < qty.
	DecrementStock(ctx context.Context, id int64, qty int) (bool, error)
}
