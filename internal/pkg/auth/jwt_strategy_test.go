package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cyberscripts/storefront/internal/domain/model"
)

func TestNewJWTStrategy_DefaultTTL(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{})
	if strategy == nil {
		t.Fatal("expected strategy instance")
	}
	if string(strategy.secret) != "secret" {
		t.Fatalf("unexpected secret: %q", string(strategy.secret))
	}
	if strategy.ttl != 7*24*time.Hour {
		t.Fatalf("unexpected ttl: %s", strategy.ttl)
	}
}

func TestNewJWTStrategy_CustomTTL(t *testing.T) {
	ttl := 2 * time.Hour
	strategy := NewJWTStrategy("secret", Options{TTL: ttl})
	if strategy.ttl != ttl {
		t.Fatalf("unexpected ttl: %s", strategy.ttl)
	}
}

func TestJWTStrategy_IssueAndParse(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{TTL: time.Minute})
	token, err := strategy.IssueToken(Identity{UserID: 42, Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	identity, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if identity.UserID != 42 {
		t.Fatalf("unexpected user id: %d", identity.UserID)
	}
	if identity.Role != model.RoleAdmin {
		t.Fatalf("unexpected role: %s", identity.Role)
	}
}

func TestJWTStrategy_ParseGarbage(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{})
	if _, err := strategy.ParseToken("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTStrategy_ParseTamperedSignature(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{TTL: time.Minute})
	token, err := strategy.IssueToken(Identity{UserID: 7, Role: model.RoleUser})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token segments: %d", len(parts))
	}
	parts[2] = "tampered"
	if _, err := strategy.ParseToken(strings.Join(parts, ".")); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTStrategy_ParseWrongSecret(t *testing.T) {
	issuer := NewJWTStrategy("secret-a", Options{TTL: time.Minute})
	verifier := NewJWTStrategy("secret-b", Options{TTL: time.Minute})
	token, err := issuer.IssueToken(Identity{UserID: 1, Role: model.RoleUser})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := verifier.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTStrategy_ParseExpired(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{TTL: time.Minute})
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: string(model.RoleUser),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "10",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	token, err := expired.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTStrategy_Name(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{})
	if strategy.Name() != "jwt" {
		t.Fatalf("unexpected name: %s", strategy.Name())
	}
}
