package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/cyberscripts/storefront/internal/domain/errors"
	"github.com/cyberscripts/storefront/internal/server/http/dto"
	"github.com/cyberscripts/storefront/internal/server/http/middleware"
	pkgAuth "github.com/cyberscripts/storefront/internal/pkg/auth"
)

// CurrentIdentity extracts the authenticated identity from the context.
func CurrentIdentity(c *gin.Context) *pkgAuth.Identity {
	return middleware.CurrentIdentity(c)
}

func respondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, dto.Success(message, data))
}

func respondCreated(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, dto.Success(message, data))
}

func respondFail(c *gin.Context, code int, message string) {
	c.JSON(code, dto.Fail(message))
}

// respondDomainError maps domain errors onto the HTTP taxonomy.
func respondDomainError(c *gin.Context, err error) {
	var stateErr domainErrors.OrderStateError
	switch {
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		respondFail(c, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, domainErrors.ErrForbidden):
		respondFail(c, http.StatusForbidden, "forbidden")
	case errors.Is(err, domainErrors.ErrNotFound):
		respondFail(c, http.StatusNotFound, "not found")
	case errors.As(err, &stateErr):
		respondFail(c, http.StatusConflict, stateErr.Error())
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		respondFail(c, http.StatusConflict, "already exists")
	case errors.Is(err, domainErrors.ErrAlreadyOwned):
		respondFail(c, http.StatusConflict, "product already owned")
	case errors.Is(err, domainErrors.ErrProductInUse):
		respondFail(c, http.StatusConflict, "product is referenced by open orders")
	case errors.Is(err, domainErrors.ErrPaymentNotSettled):
		respondFail(c, http.StatusConflict, "payment not settled")
	case errors.Is(err, domainErrors.ErrProductUnavailable):
		respondFail(c, http.StatusBadRequest, "product unavailable")
	case errors.Is(err, domainErrors.ErrCategoryMismatch):
		respondFail(c, http.StatusBadRequest, "product type mismatch")
	case errors.Is(err, domainErrors.ErrInvalidRequest):
		respondFail(c, http.StatusBadRequest, "invalid request")
	default:
		c.JSON(http.StatusInternalServerError, dto.Error("internal error"))
	}
}

// pathID parses a numeric path parameter; the second result is false when the
// handler already responded with 400.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondFail(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
