package app

import (
	"context"
	"time"

	"github.com/cyberscripts/storefront/internal/domain/model"
	"github.com/cyberscripts/storefront/internal/domain/repository"
	pkgAuth "github.com/cyberscripts/storefront/internal/pkg/auth"
	"github.com/cyberscripts/storefront/internal/usecase"
)

// StoreFacade is the single surface the HTTP layer and the reconciler talk
// to. It composes the use cases without adding behaviour of its own.
type StoreFacade struct {
	auth         *usecase.AuthUseCase
	catalog      *usecase.CatalogUseCase
	orders       *usecase.OrderUseCase
	entitlements *usecase.EntitlementUseCase
	admin        *usecase.AdminUseCase
	payments     *usecase.PaymentUseCase
}

// NewStoreFacade constructs StoreFacade.
func NewStoreFacade(
	auth *usecase.AuthUseCase,
	catalog *usecase.CatalogUseCase,
	orders *usecase.OrderUseCase,
	entitlements *usecase.EntitlementUseCase,
	admin *usecase.AdminUseCase,
	payments *usecase.PaymentUseCase,
) *StoreFacade {
	return &StoreFacade{
		auth:         auth,
		catalog:      catalog,
		orders:       orders,
		entitlements: entitlements,
		admin:        admin,
		payments:     payments,
	}
}

// --- auth ---

func (f *StoreFacade) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	return f.auth.Register(ctx, name, email, password)
}

func (f *StoreFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *StoreFacade) ParseToken(token string) (*pkgAuth.Identity, error) {
	return f.auth.ParseToken(token)
}

func (f *StoreFacade) Profile(ctx context.Context, userID int64) (*model.User, error) {
	return f.auth.GetByID(ctx, userID)
}

// --- catalog ---

func (f *StoreFacade) Storefront(ctx context.Context) ([]model.Product, error) {
	return f.catalog.ListPublished(ctx)
}

func (f *StoreFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.catalog.Get(ctx, id)
}

func (f *StoreFacade) Products(ctx context.Context, category model.ProductCategory) ([]model.Product, error) {
	return f.catalog.List(ctx, category)
}

func (f *StoreFacade) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	return f.catalog.Create(ctx, product)
}

func (f *StoreFacade) UpdateProduct(ctx context.Context, id int64, update usecase.ProductUpdate) (*model.Product, error) {
	return f.catalog.Update(ctx, id, update)
}

func (f *StoreFacade) DeleteProduct(ctx context.Context, id int64) error {
	return f.catalog.Delete(ctx, id)
}

// --- orders ---

func (f *StoreFacade) Checkout(ctx context.Context, userID int64, in usecase.CheckoutInput) (*model.Order, error) {
	return f.orders.Checkout(ctx, userID, in)
}

func (f *StoreFacade) Order(ctx context.Context, id, callerID int64) (*model.Order, error) {
	return f.orders.Get(ctx, id, callerID)
}

func (f *StoreFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *StoreFacade) AllOrders(ctx context.Context, adminID int64, status model.OrderStatus) ([]model.Order, error) {
	return f.orders.List(ctx, adminID, status)
}

func (f *StoreFacade) VerifyOrder(ctx context.Context, orderID, adminID int64) (*model.Order, error) {
	return f.orders.Verify(ctx, orderID, adminID)
}

func (f *StoreFacade) RejectOrder(ctx context.Context, orderID, adminID int64, reason string) (*model.Order, error) {
	return f.orders.Reject(ctx, orderID, adminID, reason)
}

// --- entitlements ---

func (f *StoreFacade) Purchases(ctx context.Context, userID int64) ([]model.Purchase, error) {
	return f.entitlements.ListPurchases(ctx, userID)
}

func (f *StoreFacade) AssignProduct(ctx context.Context, adminID, userID, productID int64, category model.ProductCategory) error {
	return f.entitlements.Assign(ctx, adminID, userID, productID, category)
}

func (f *StoreFacade) RemoveProduct(ctx context.Context, adminID, userID, productID int64) error {
	return f.entitlements.Remove(ctx, adminID, userID, productID)
}

// --- admin users ---

func (f *StoreFacade) Users(ctx context.Context, adminID int64) ([]model.User, error) {
	return f.admin.ListUsers(ctx, adminID)
}

func (f *StoreFacade) User(ctx context.Context, adminID, userID int64) (*model.User, error) {
	return f.admin.GetUser(ctx, adminID, userID)
}

func (f *StoreFacade) UpdateUser(ctx context.Context, adminID, userID int64, update repository.UserUpdate) (*model.User, error) {
	return f.admin.UpdateUser(ctx, adminID, userID, update)
}

func (f *StoreFacade) DeleteUser(ctx context.Context, adminID, userID int64) error {
	return f.admin.DeleteUser(ctx, adminID, userID)
}

// --- payments ---

func (f *StoreFacade) CreatePaymentIntent(ctx context.Context, userID int64, in usecase.CheckoutInput) (*model.Order, *model.PaymentIntent, error) {
	return f.payments.CreateIntent(ctx, userID, in)
}

func (f *StoreFacade) ConfirmPayment(ctx context.Context, userID int64, intentID string) (*model.Order, error) {
	return f.payments.Confirm(ctx, userID, intentID)
}

func (f *StoreFacade) HandlePaymentWebhook(ctx context.Context, event usecase.WebhookEvent) error {
	return f.payments.HandleWebhook(ctx, event)
}

func (f *StoreFacade) VerifyWebhookSignature(body []byte, signature string) bool {
	return f.payments.VerifySignature(body, signature)
}

func (f *StoreFacade) StalePendingOrders(ctx context.Context, age time.Duration, limit int) ([]model.Order, error) {
	return f.payments.SelectStalePending(ctx, age, limit)
}

func (f *StoreFacade) ReconcileOrder(ctx context.Context, order model.Order) (model.OrderStatus, error) {
	return f.payments.Reconcile(ctx, order)
}
