package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cyberscripts/storefront/internal/domain/model"
)

// JWTStrategy implements token creation/verification using HS256 JWTs.
type JWTStrategy struct {
	secret []byte
	ttl    time.Duration
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// NewJWTStrategy builds JWTStrategy with provided secret and options.
func NewJWTStrategy(secret string, opts Options) *JWTStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &JWTStrategy{secret: []byte(secret), ttl: ttl}
}

// IssueToken generates a signed token carrying user id and role.
func (s *JWTStrategy) IssueToken(identity Identity) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: string(identity.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(identity.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	return token.SignedString(s.secret)
}

// ParseToken validates the token and returns the encoded identity.
func (s *JWTStrategy) ParseToken(token string) (*Identity, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &Identity{UserID: userID, Role: model.Role(c.Role)}, nil
}

func (s *JWTStrategy) Name() string {
	return "jwt"
}
