package catalog

import (
	"context"

	"github.com/fjod/go_cart/storefront/internal/domain"
)

// Store is the read-only product catalog. Listings come back in insertion order.
type Store interface {
	GetAll(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetByCategory(ctx context.Context, category string) ([]domain.Product, error)
	Find(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
}
