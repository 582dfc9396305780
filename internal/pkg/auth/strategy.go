package auth

import (
	"errors"
	"time"

	"github.com/cyberscripts/storefront/internal/domain/model"
)

var ErrInvalidToken = errors.New("invalid auth token")

// Identity is the resolved result of a bearer credential.
type Identity struct {
	UserID int64
	Role   model.Role
}

type Strategy interface {
	IssueToken(identity Identity) (string, error)
	ParseToken(token string) (*Identity, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
