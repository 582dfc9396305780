package repository

import (
	"context"

	"github.com/cyberscripts/storefront/internal/domain/model"
)

// UserUpdate carries the mutable admin-editable user fields. Nil fields are
// left untouched.
type UserUpdate struct {
	Name     *string
	Role     *model.Role
	IsActive *bool
}

// UserRepository describes persistence operations for users and their
// entitlements.
type UserRepository interface {
	Create(ctx context.Context, name, email, passwordHash string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id int64, update UserUpdate) (*model.User, error)
	Delete(ctx context.Context, id int64) error
	RecordLogin(ctx context.Context, id int64) error

	// GrantPurchase appends an entitlement and recomputes aggregate stats in
	// one transaction. Returns ErrAlreadyOwned if the user holds the product.
	GrantPurchase(ctx context.Context, userID, productID int64, amount float64, licenseKey string) error
	RemovePurchase(ctx context.Context, userID, productID int64) error
	ListPurchases(ctx context.Context, userID int64) ([]model.Purchase, error)
	HasPurchase(ctx context.Context, userID, productID int64) (bool, error)
}
