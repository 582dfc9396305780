package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/cyberscripts/storefront/internal/domain/errors"
	"github.com/cyberscripts/storefront/internal/domain/model"
	"github.com/cyberscripts/storefront/internal/domain/repository"
)

// DefaultRejectionReason is recorded when an admin rejects without a reason.
const DefaultRejectionReason = "Payment verification failed"

// CheckoutItem is one cart line as declared by the buyer. Name and price are
// cart-time snapshots; the catalog is consulted only to confirm the product
// exists and is published.
type CheckoutItem struct {
	ProductID int64
	Name      string
	Price     float64
	Quantity  int
}

// CheckoutInput carries everything a buyer submits at checkout.
type CheckoutInput struct {
	Items             []CheckoutItem
	PaymentMethod     string
	TransactionID     string
	PaymentScreenshot string
	CustomerPhone     string
}

// OrderUseCase owns the manual order lifecycle: checkout, the one-shot admin
// verify/reject decision, and order listings.
type OrderUseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	users    repository.UserRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, products repository.ProductRepository, users repository.UserRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders, products: products, users: users}
}

// Checkout persists a new manual order in pending_verification. The total is
// recomputed from the line items, never trusted from the caller, and customer
// contact fields are denormalized from the user record.
func (u *OrderUseCase) Checkout(ctx context.Context, userID int64, in CheckoutInput) (*model.Order, error) {
	if len(in.Items) == 0 {
		return nil, domainErrors.ErrInvalidRequest
	}
	if strings.TrimSpace(in.TransactionID) == "" {
		return nil, domainErrors.ErrInvalidRequest
	}

	buyer, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]model.OrderItem, 0, len(in.Items))
	for _, line := range in.Items {
		if line.Quantity < 1 || line.Price < 0 {
			return nil, domainErrors.ErrInvalidRequest
		}
		product, err := u.products.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return nil, domainErrors.ErrProductUnavailable
			}
			return nil, err
		}
		if product.Status != model.ProductStatusPublished {
			return nil, domainErrors.ErrProductUnavailable
		}
		name := strings.TrimSpace(line.Name)
		if name == "" {
			name = product.Name
		}
		items = append(items, model.OrderItem{
			ProductID:   product.ID,
			ProductType: product.Category,
			ProductName: name,
			Price:       model.RoundPrice(line.Price),
			Quantity:    line.Quantity,
		})
	}

	method := strings.TrimSpace(in.PaymentMethod)
	if method == "" {
		method = "upi"
	}

	order := &model.Order{
		UserID:            userID,
		Kind:              model.OrderKindManual,
		Status:            model.OrderStatusPendingVerification,
		Items:             items,
		TotalAmount:       model.SumItems(items),
		PaymentMethod:     method,
		TransactionID:     strings.TrimSpace(in.TransactionID),
		PaymentScreenshot: in.PaymentScreenshot,
		CustomerName:      buyer.Name,
		CustomerEmail:     buyer.Email,
		CustomerPhone:     in.CustomerPhone,
	}
	return u.orders.Create(ctx, order)
}

// Get fetches a single order. Callers only see their own orders; a foreign
// order reads as not found unless the caller still holds the admin role in
// storage, so a stale token cannot widen read access.
func (u *OrderUseCase) Get(ctx context.Context, id, callerID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != callerID {
		if err := requireAdmin(ctx, u.users, callerID); err != nil {
			if errors.Is(err, domainErrors.ErrForbidden) {
				return nil, domainErrors.ErrNotFound
			}
			return nil, err
		}
	}
	return order, nil
}

// ListByUser returns the caller's own orders, newest first.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// List returns all orders, optionally filtered by status. The admin role is
// re-checked from storage like every other privileged operation.
func (u *OrderUseCase) List(ctx context.Context, adminID int64, status model.OrderStatus) ([]model.Order, error) {
	if err := requireAdmin(ctx, u.users, adminID); err != nil {
		return nil, err
	}
	if status != "" && !status.Valid() {
		return nil, domainErrors.ErrInvalidRequest
	}
	return u.orders.List(ctx, status)
}

// Verify settles a pending manual order and grants entitlements. The admin
// role is re-checked from storage rather than trusted from the route.
func (u *OrderUseCase) Verify(ctx context.Context, orderID, adminID int64) (*model.Order, error) {
	if err := requireAdmin(ctx, u.users, adminID); err != nil {
		return nil, err
	}
	return u.orders.Verify(ctx, orderID, adminID)
}

// Reject declines a pending manual order, recording the reason.
func (u *OrderUseCase) Reject(ctx context.Context, orderID, adminID int64, reason string) (*model.Order, error) {
	if err := requireAdmin(ctx, u.users, adminID); err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultRejectionReason
	}
	return u.orders.Reject(ctx, orderID, adminID, reason)
}

// requireAdmin re-checks the acting identity against storage instead of
// trusting route-level gating.
func requireAdmin(ctx context.Context, users repository.UserRepository, adminID int64) error {
	actor, err := users.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return domainErrors.ErrForbidden
		}
		return err
	}
	if !actor.IsAdmin() {
		return domainErrors.ErrForbidden
	}
	return nil
}
