package errors

import (
	"errors"
	"fmt"

	"github.com/cyberscripts/storefront/internal/domain/model"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access denied")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrAlreadyOwned       = errors.New("user already owns this product")
	ErrProductUnavailable = errors.New("product not found or unavailable")
	ErrProductInUse       = errors.New("product is referenced by open orders")
	ErrCategoryMismatch   = errors.New("product category mismatch")
	ErrPaymentNotSettled  = errors.New("payment not successful")
)

// OrderStateError reports an operation attempted on an order that is not in
// the required status. The current status is carried so operators see why a
// repeated action was refused.
type OrderStateError struct {
	Status model.OrderStatus
}

func (e OrderStateError) Error() string {
	return fmt.Sprintf("order is already %s", e.Status)
}
