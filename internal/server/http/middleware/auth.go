package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cyberscripts/storefront/internal/domain/model"
	"github.com/cyberscripts/storefront/internal/server/http/dto"
	pkgAuth "github.com/cyberscripts/storefront/internal/pkg/auth"
)

// IdentityContextKey is a gin context key for the authenticated identity.
const IdentityContextKey = "identity"

// TokenParser resolves a bearer token into an identity.
type TokenParser interface {
	ParseToken(token string) (*pkgAuth.Identity, error)
}

// AuthRequired ensures the caller presents a valid bearer token.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("authentication required"))
			return
		}

		identity, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("invalid token"))
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Error("internal error"))
			return
		}

		c.Set(IdentityContextKey, identity)
		c.Next()
	}
}

// AdminRequired gates a route group to admin identities. Handlers behind it
// still re-check the role against storage.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if identity == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("authentication required"))
			return
		}
		if identity.Role != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.Fail("admin access required"))
			return
		}
		c.Next()
	}
}

// CurrentIdentity extracts the authenticated identity from the context.
func CurrentIdentity(c *gin.Context) *pkgAuth.Identity {
	val, ok := c.Get(IdentityContextKey)
	if !ok {
		return nil
	}
	identity, _ := val.(*pkgAuth.Identity)
	return identity
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
