package usecase

import (
	"context"
	"strings"

	"github.com/cyberscripts/storefront/internal/cache"
	domainErrors "github.com/cyberscripts/storefront/internal/domain/errors"
	"github.com/cyberscripts/storefront/internal/domain/model"
	"github.com/cyberscripts/storefront/internal/domain/repository"
)

// CatalogUseCase owns the product catalog: the public storefront listing and
// the admin CRUD behind it.
type CatalogUseCase struct {
	products repository.ProductRepository
	cache    cache.ProductCache
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository, productCache cache.ProductCache) *CatalogUseCase {
	return &CatalogUseCase{products: products, cache: productCache}
}

// ListPublished returns the storefront listing, served from cache when warm.
func (u *CatalogUseCase) ListPublished(ctx context.Context) ([]model.Product, error) {
	if products, ok := u.cache.GetPublished(ctx); ok {
		return products, nil
	}
	products, err := u.products.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	u.cache.SetPublished(ctx, products)
	return products, nil
}

// Get fetches a single product.
func (u *CatalogUseCase) Get(ctx context.Context, id int64) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}

// List returns all products, optionally filtered by category. Admin view:
// drafts and archived entries are included.
func (u *CatalogUseCase) List(ctx context.Context, category model.ProductCategory) ([]model.Product, error) {
	if category != "" && !category.Valid() {
		return nil, domainErrors.ErrInvalidRequest
	}
	return u.products.List(ctx, category)
}

// Create adds a catalog entry. The slug derives from the name and must be
// unique.
func (u *CatalogUseCase) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" || product.Price < 0 || !product.Category.Valid() {
		return nil, domainErrors.ErrInvalidRequest
	}
	if product.Status == "" {
		product.Status = model.ProductStatusDraft
	}
	if !product.Status.Valid() {
		return nil, domainErrors.ErrInvalidRequest
	}
	product.Slug = model.Slugify(product.Name)
	product.Price = model.RoundPrice(product.Price)

	created, err := u.products.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	u.cache.Invalidate(ctx)
	return created, nil
}

// ProductUpdate carries optional catalog fields; nil means keep the current value.
type ProductUpdate struct {
	Name        *string
	Description *string
	Category    *model.ProductCategory
	Price       *float64
	Status      *model.ProductStatus
}

// Update modifies a catalog entry and drops the cached listing. A renamed
// product gets a fresh slug.
func (u *CatalogUseCase) Update(ctx context.Context, id int64, update ProductUpdate) (*model.Product, error) {
	product, err := u.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, domainErrors.ErrInvalidRequest
		}
		product.Name = name
		product.Slug = model.Slugify(name)
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Category != nil {
		if !update.Category.Valid() {
			return nil, domainErrors.ErrInvalidRequest
		}
		product.Category = *update.Category
	}
	if update.Price != nil {
		if *update.Price < 0 {
			return nil, domainErrors.ErrInvalidRequest
		}
		product.Price = model.RoundPrice(*update.Price)
	}
	if update.Status != nil {
		if !update.Status.Valid() {
			return nil, domainErrors.ErrInvalidRequest
		}
		product.Status = *update.Status
	}

	updated, err := u.products.Update(ctx, product)
	if err != nil {
		return nil, err
	}
	u.cache.Invalidate(ctx)
	return updated, nil
}

// Delete removes a catalog entry unless open orders still reference it.
func (u *CatalogUseCase) Delete(ctx context.Context, id int64) error {
	if err := u.products.Delete(ctx, id); err != nil {
		return err
	}
	u.cache.Invalidate(ctx)
	return nil
}
