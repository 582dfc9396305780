package repository

import (
	"context"
	"time"

	"github.com/cyberscripts/storefront/internal/domain/model"
)

// OrderRepository describes persistence operations with orders. Verify,
// Reject, CompleteByIntent and FailByIntent apply their whole effect inside a
// single transaction guarded by a compare-and-set on the current status, so
// concurrent admin actions resolve to exactly one winner.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	GetByIntentID(ctx context.Context, intentID string) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	List(ctx context.Context, status model.OrderStatus) ([]model.Order, error)

	// Verify transitions a pending_verification manual order to verified and
	// grants the line-item entitlements to the owning user.
	Verify(ctx context.Context, orderID, adminID int64) (*model.Order, error)
	// Reject transitions a pending_verification manual order to rejected.
	// No entitlement or stats mutation happens.
	Reject(ctx context.Context, orderID, adminID int64, reason string) (*model.Order, error)

	// CompleteByIntent settles a pending gateway order and grants its items.
	CompleteByIntent(ctx context.Context, intentID string) (*model.Order, error)
	// FailByIntent marks a pending gateway order failed.
	FailByIntent(ctx context.Context, intentID string) (*model.Order, error)
	// SelectStalePending returns pending gateway orders older than age for
	// reconciliation against the payment provider.
	SelectStalePending(ctx context.Context, age time.Duration, limit int) ([]model.Order, error)
}
