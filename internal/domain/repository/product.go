package repository

import (
	"context"

	"github.com/cyberscripts/storefront/internal/domain/model"
)

// ProductRepository describes persistence operations for the catalog.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	ListPublished(ctx context.Context) ([]model.Product, error)
	List(ctx context.Context, category model.ProductCategory) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) (*model.Product, error)
	// Delete refuses with ErrProductInUse when pending orders still reference
	// the product.
	Delete(ctx context.Context, id int64) error
}
