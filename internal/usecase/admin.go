package usecase

import (
	"context"

	domainErrors "github.com/cyberscripts/storefront/internal/domain/errors"
	"github.com/cyberscripts/storefront/internal/domain/model"
	"github.com/cyberscripts/storefront/internal/domain/repository"
)

// AdminUseCase covers back-office user management.
type AdminUseCase struct {
	users repository.UserRepository
}

// NewAdminUseCase constructs AdminUseCase.
func NewAdminUseCase(users repository.UserRepository) *AdminUseCase {
	return &AdminUseCase{users: users}
}

// ListUsers returns all accounts, newest first.
func (u *AdminUseCase) ListUsers(ctx context.Context, adminID int64) ([]model.User, error) {
	if err := requireAdmin(ctx, u.users, adminID); err != nil {
		return nil, err
	}
	return u.users.List(ctx)
}

// GetUser fetches a single account.
func (u *AdminUseCase) GetUser(ctx context.Context, adminID, userID int64) (*model.User, error) {
	if err := requireAdmin(ctx, u.users, adminID); err != nil {
		return nil, err
	}
	return u.users.GetByID(ctx, userID)
}

// UpdateUser changes name, role or active flag. An admin cannot demote or
// deactivate their own account.
func (u *AdminUseCase) UpdateUser(ctx context.Context, adminID, userID int64, update repository.UserUpdate) (*model.User, error) {
	if err := requireAdmin(ctx, u.users, adminID); err != nil {
		return nil, err
	}
	if update.Role != nil && !update.Role.Valid() {
		return nil, domainErrors.ErrInvalidRequest
	}
	if adminID == userID && (update.Role != nil || update.IsActive != nil) {
		return nil, domainErrors.ErrInvalidRequest
	}
	return u.users.Update(ctx, userID, update)
}

// DeleteUser removes an account. Self-deletion is refused.
func (u *AdminUseCase) DeleteUser(ctx context.Context, adminID, userID int64) error {
	if err := requireAdmin(ctx, u.users, adminID); err != nil {
		return err
	}
	if adminID == userID {
		return domainErrors.ErrInvalidRequest
	}
	return u.users.Delete(ctx, userID)
}
