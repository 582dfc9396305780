package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/cyberscripts/storefront/internal/domain/errors"
	"github.com/cyberscripts/storefront/internal/domain/model"
	"github.com/cyberscripts/storefront/internal/domain/repository"
	pkgAuth "github.com/cyberscripts/storefront/internal/pkg/auth"
)

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy}
}

// Register creates a new customer account and returns an auth token.
func (u *AuthUseCase) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || len(password) < 6 {
		return nil, "", domainErrors.ErrInvalidRequest
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, name, email, hash)
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(pkgAuth.Identity{UserID: usr.ID, Role: usr.Role})
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials, records the login and returns an auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !usr.IsActive {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	if err := u.users.RecordLogin(ctx, usr.ID); err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(pkgAuth.Identity{UserID: usr.ID, Role: usr.Role})
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts the caller identity from a token.
func (u *AuthUseCase) ParseToken(token string) (*pkgAuth.Identity, error) {
	if token == "" {
		return nil, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches a user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}
