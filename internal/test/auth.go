package test

import (
	"errors"
	"fmt"

	"github.com/cyberscripts/storefront/internal/domain/model"
	pkgAuth "github.com/cyberscripts/storefront/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues and parses tokens via function overrides. The default
// token encodes the identity so round-trips work without real signing.
type StrategyStub struct {
	IssueFn func(pkgAuth.Identity) (string, error)
	ParseFn func(string) (*pkgAuth.Identity, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(identity pkgAuth.Identity) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(identity)
	}
	return fmt.Sprintf("token-%d-%s", identity.UserID, identity.Role), nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (*pkgAuth.Identity, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	var id int64
	var role string
	if _, err := fmt.Sscanf(token, "token-%d-%s", &id, &role); err != nil {
		return nil, pkgAuth.ErrInvalidToken
	}
	return &pkgAuth.Identity{UserID: id, Role: model.Role(role)}, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// TokenParserStub implements the middleware token parsing contract.
type TokenParserStub struct {
	Identity *pkgAuth.Identity
	Err      error
	ParseFn  func(string) (*pkgAuth.Identity, error)
}

// ParseToken either delegates to override or returns the predefined result.
func (s TokenParserStub) ParseToken(token string) (*pkgAuth.Identity, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Identity != nil {
		return s.Identity, nil
	}
	return &pkgAuth.Identity{UserID: 1, Role: model.RoleUser}, nil
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
