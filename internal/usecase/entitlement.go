package usecase

import (
	"context"

	domainErrors "github.com/cyberscripts/storefront/internal/domain/errors"
	"github.com/cyberscripts/storefront/internal/domain/model"
	"github.com/cyberscripts/storefront/internal/domain/repository"
	"github.com/cyberscripts/storefront/internal/pkg/license"
)

// EntitlementUseCase covers direct entitlement management: the purchases a
// user can see, and the admin-side grant/revoke that bypasses the order flow.
type EntitlementUseCase struct {
	users    repository.UserRepository
	products repository.ProductRepository
}

// NewEntitlementUseCase constructs EntitlementUseCase.
func NewEntitlementUseCase(users repository.UserRepository, products repository.ProductRepository) *EntitlementUseCase {
	return &EntitlementUseCase{users: users, products: products}
}

// ListPurchases returns the user's entitlements, newest first.
func (u *EntitlementUseCase) ListPurchases(ctx context.Context, userID int64) ([]model.Purchase, error) {
	return u.users.ListPurchases(ctx, userID)
}

// Assign grants a product directly to a user, generating a fresh license key.
// The declared category must match the catalog entry; owning the product
// already is a conflict, not a no-op.
func (u *EntitlementUseCase) Assign(ctx context.Context, adminID, userID, productID int64, category model.ProductCategory) error {
	if err := requireAdmin(ctx, u.users, adminID); err != nil {
		return err
	}

	product, err := u.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if category != "" && category != product.Category {
		return domainErrors.ErrCategoryMismatch
	}
	if _, err := u.users.GetByID(ctx, userID); err != nil {
		return err
	}

	return u.users.GrantPurchase(ctx, userID, productID, product.Price, license.NewKey())
}

// Remove revokes a user's entitlement and recomputes their stats.
func (u *EntitlementUseCase) Remove(ctx context.Context, adminID, userID, productID int64) error {
	if err := requireAdmin(ctx, u.users, adminID); err != nil {
		return err
	}
	return u.users.RemovePurchase(ctx, userID, productID)
}
