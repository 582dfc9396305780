package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cyberscripts/storefront/internal/adapter/gateway"
	domainErrors "github.com/cyberscripts/storefront/internal/domain/errors"
	"github.com/cyberscripts/storefront/internal/domain/model"
	"github.com/cyberscripts/storefront/internal/domain/repository"
)

// PaymentUseCase drives the automated gateway path: intent creation at
// checkout, settlement via webhook or buyer confirmation, and reconciliation
// of orders the webhook never reached.
type PaymentUseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	users    repository.UserRepository
	gateway  gateway.Client
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(orders repository.OrderRepository, products repository.ProductRepository, users repository.UserRepository, client gateway.Client) *PaymentUseCase {
	return &PaymentUseCase{orders: orders, products: products, users: users, gateway: client}
}

// CreateIntent registers a payment intent with the provider and persists the
// matching gateway order in pending. The client secret goes back to the buyer
// so their browser can complete the charge.
func (u *PaymentUseCase) CreateIntent(ctx context.Context, userID int64, in CheckoutInput) (*model.Order, *model.PaymentIntent, error) {
	if len(in.Items) == 0 {
		return nil, nil, domainErrors.ErrInvalidRequest
	}

	buyer, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	items := make([]model.OrderItem, 0, len(in.Items))
	for _, line := range in.Items {
		if line.Quantity < 1 || line.Price < 0 {
			return nil, nil, domainErrors.ErrInvalidRequest
		}
		product, err := u.products.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return nil, nil, domainErrors.ErrProductUnavailable
			}
			return nil, nil, err
		}
		if product.Status != model.ProductStatusPublished {
			return nil, nil, domainErrors.ErrProductUnavailable
		}
		owned, err := u.users.HasPurchase(ctx, userID, product.ID)
		if err != nil {
			return nil, nil, err
		}
		if owned {
			return nil, nil, domainErrors.ErrAlreadyOwned
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

	total := model.SumItems(items)
	intent, err := u.gateway.CreateIntent(ctx, total, fmt.Sprintf("user-%d", userID))
	if err != nil {
		return nil, nil, err
	}

	order := &model.Order{
		UserID:        userID,
		Kind:          model.OrderKindGateway,
		Status:        model.OrderStatusPending,
		Items:         items,
		TotalAmount:   total,
		PaymentMethod: "card",
		IntentID:      intent.ID,
		CustomerName:  buyer.Name,
		CustomerEmail: buyer.Email,
		CustomerPhone: in.CustomerPhone,
	}
	created, err := u.orders.Create(ctx, order)
	if err != nil {
		return nil, nil, err
	}
	return created, intent, nil
}

// Confirm settles a gateway order after the buyer reports payment. The intent
// status is read back from the provider, never trusted from the client.
func (u *PaymentUseCase) Confirm(ctx context.Context, userID int64, intentID string) (*model.Order, error) {
	order, err := u.orders.GetByIntentID(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}

	intent, err := u.gateway.GetIntent(ctx, intentID)
	if err != nil {
		if errors.Is(err, gateway.ErrIntentNotFound) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	switch intent.Status {
	case model.IntentStatusSucceeded:
		return u.orders.CompleteByIntent(ctx, intentID)
	case model.IntentStatusCanceled:
		return u.orders.FailByIntent(ctx, intentID)
	default:
		return nil, domainErrors.ErrPaymentNotSettled
	}
}

// WebhookEvent is the provider's settlement notification.
type WebhookEvent struct {
	IntentID string `json:"intent_id"`
	Status   string `json:"status"`
}

// HandleWebhook applies a provider notification. The raw body signature must
// already be verified by the caller. Late or replayed events on settled
// orders are swallowed.
func (u *PaymentUseCase) HandleWebhook(ctx context.Context, event WebhookEvent) error {
	if event.IntentID == "" {
		return domainErrors.ErrInvalidRequest
	}

	var err error
	switch model.IntentStatus(event.Status) {
	case model.IntentStatusSucceeded:
		_, err = u.orders.CompleteByIntent(ctx, event.IntentID)
	case model.IntentStatusCanceled:
		_, err = u.orders.FailByIntent(ctx, event.IntentID)
	default:
		return nil
	}

	var stateErr domainErrors.OrderStateError
	if errors.As(err, &stateErr) {
		return nil
	}
	return err
}

// VerifySignature delegates to the gateway client's webhook signing scheme.
func (u *PaymentUseCase) VerifySignature(body []byte, signature string) bool {
	return u.gateway.VerifySignature(body, signature)
}

// SelectStalePending returns gateway orders stuck in pending longer than age.
func (u *PaymentUseCase) SelectStalePending(ctx context.Context, age time.Duration, limit int) ([]model.Order, error) {
	return u.orders.SelectStalePending(ctx, age, limit)
}

// Reconcile re-reads the provider state for one stale order and settles it
// when the provider has reached a terminal status. Returns the resulting
// status, or the unchanged one when the intent is still in flight.
func (u *PaymentUseCase) Reconcile(ctx context.Context, order model.Order) (model.OrderStatus, error) {
	intent, err := u.gateway.GetIntent(ctx, order.IntentID)
	if err != nil {
		if errors.Is(err, gateway.ErrIntentNotFound) {
			failed, ferr := u.orders.FailByIntent(ctx, order.IntentID)
			if ferr != nil {
				return order.Status, ferr
			}
			return failed.Status, nil
		}
		return order.Status, err
	}

	switch intent.Status {
	case model.IntentStatusSucceeded:
		completed, err := u.orders.CompleteByIntent(ctx, order.IntentID)
		if err != nil {
			return order.Status, err
		}
		return completed.Status, nil
	case model.IntentStatusCanceled:
		failed, err := u.orders.FailByIntent(ctx, order.IntentID)
		if err != nil {
			return order.Status, err
		}
		return failed.Status, nil
	default:
		return order.Status, nil
	}
}
