package handlers

import (
	"context"

	"github.com/cyberscripts/storefront/internal/domain/model"
	"github.com/cyberscripts/storefront/internal/domain/repository"
	pkgAuth "github.com/cyberscripts/storefront/internal/pkg/auth"
	"github.com/cyberscripts/storefront/internal/usecase"
)

type authFacadeStub struct {
	RegisterFn     func(context.Context, string, string, string) (*model.User, string, error)
	AuthenticateFn func(context.Context, string, string) (*model.User, string, error)
	ParseTokenFn   func(string) (*pkgAuth.Identity, error)
	ProfileFn      func(context.Context, int64) (*model.User, error)
}

func (s authFacadeStub) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, name, email, password)
	}
	return &model.User{ID: 1, Name: name, Email: email, Role: model.RoleUser, IsActive: true}, "session-token", nil
}

func (s authFacadeStub) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return &model.User{ID: 1, Email: email, Role: model.RoleUser, IsActive: true}, "session-token", nil
}

func (s authFacadeStub) ParseToken(token string) (*pkgAuth.Identity, error) {
	if s.ParseTokenFn != nil {
		return s.ParseTokenFn(token)
	}
	return &pkgAuth.Identity{UserID: 1, Role: model.RoleUser}, nil
}

func (s authFacadeStub) Profile(ctx context.Context, userID int64) (*model.User, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, userID)
	}
	return &model.User{ID: userID, Role: model.RoleUser, IsActive: true}, nil
}

type catalogFacadeStub struct {
	StorefrontFn func(context.Context) ([]model.Product, error)
	ProductFn    func(context.Context, int64) (*model.Product, error)
	ProductsFn   func(context.Context, model.ProductCategory) ([]model.Product, error)
	CreateFn     func(context.Context, *model.Product) (*model.Product, error)
	UpdateFn     func(context.Context, int64, usecase.ProductUpdate) (*model.Product, error)
	DeleteFn     func(context.Context, int64) error
}

func (s catalogFacadeStub) Storefront(ctx context.Context) ([]model.Product, error) {
	if s.StorefrontFn != nil {
		return s.StorefrontFn(ctx)
	}
	return []model.Product{{ID: 1, Name: "Port Scanner", Status: model.ProductStatusPublished}}, nil
}

func (s catalogFacadeStub) Product(ctx context.Context, id int64) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return &model.Product{ID: id, Name: "Port Scanner"}, nil
}

func (s catalogFacadeStub) Products(ctx context.Context, category model.ProductCategory) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, category)
	}
	return []model.Product{{ID: 1, Name: "Port Scanner"}}, nil
}

func (s catalogFacadeStub) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, product)
	}
	created := *product
	created.ID = 1
	return &created, nil
}

func (s catalogFacadeStub) UpdateProduct(ctx context.Context, id int64, update usecase.ProductUpdate) (*model.Product, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, update)
	}
	return &model.Product{ID: id}, nil
}

func (s catalogFacadeStub) DeleteProduct(ctx context.Context, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

type orderFacadeStub struct {
	CheckoutFn  func(context.Context, int64, usecase.CheckoutInput) (*model.Order, error)
	OrderFn     func(context.Context, int64, int64) (*model.Order, error)
	OrdersFn    func(context.Context, int64) ([]model.Order, error)
	AllOrdersFn func(context.Context, int64, model.OrderStatus) ([]model.Order, error)
	VerifyFn    func(context.Context, int64, int64) (*model.Order, error)
	RejectFn    func(context.Context, int64, int64, string) (*model.Order, error)
}

func (s orderFacadeStub) Checkout(ctx context.Context, userID int64, in usecase.CheckoutInput) (*model.Order, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, userID, in)
	}
	return &model.Order{ID: 1, UserID: userID, Status: model.OrderStatusPendingVerification}, nil
}

func (s orderFacadeStub) Order(ctx context.Context, id, callerID int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id, callerID)
	}
	return &model.Order{ID: id, UserID: callerID}, nil
}

func (s orderFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{{ID: 1, UserID: userID}}, nil
}

func (s orderFacadeStub) AllOrders(ctx context.Context, adminID int64, status model.OrderStatus) ([]model.Order, error) {
	if s.AllOrdersFn != nil {
		return s.AllOrdersFn(ctx, adminID, status)
	}
	return []model.Order{{ID: 1}}, nil
}

func (s orderFacadeStub) VerifyOrder(ctx context.Context, orderID, adminID int64) (*model.Order, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, orderID, adminID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusVerified, VerifiedBy: &adminID}, nil
}

func (s orderFacadeStub) RejectOrder(ctx context.Context, orderID, adminID int64, reason string) (*model.Order, error) {
	if s.RejectFn != nil {
		return s.RejectFn(ctx, orderID, adminID, reason)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusRejected, RejectionReason: reason}, nil
}

type entitlementFacadeStub struct {
	PurchasesFn func(context.Context, int64) ([]model.Purchase, error)
	AssignFn    func(context.Context, int64, int64, int64, model.ProductCategory) error
	RemoveFn    func(context.Context, int64, int64, int64) error
}

func (s entitlementFacadeStub) Purchases(ctx context.Context, userID int64) ([]model.Purchase, error) {
	if s.PurchasesFn != nil {
		return s.PurchasesFn(ctx, userID)
	}
	return []model.Purchase{{UserID: userID, ProductID: 1}}, nil
}

func (s entitlementFacadeStub) AssignProduct(ctx context.Context, adminID, userID, productID int64, category model.ProductCategory) error {
	if s.AssignFn != nil {
		return s.AssignFn(ctx, adminID, userID, productID, category)
	}
	return nil
}

func (s entitlementFacadeStub) RemoveProduct(ctx context.Context, adminID, userID, productID int64) error {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, adminID, userID, productID)
	}
	return nil
}

type adminFacadeStub struct {
	UsersFn      func(context.Context, int64) ([]model.User, error)
	UserFn       func(context.Context, int64, int64) (*model.User, error)
	UpdateUserFn func(context.Context, int64, int64, repository.UserUpdate) (*model.User, error)
	DeleteUserFn func(context.Context, int64, int64) error
}

func (s adminFacadeStub) Users(ctx context.Context, adminID int64) ([]model.User, error) {
	if s.UsersFn != nil {
		return s.UsersFn(ctx, adminID)
	}
	return []model.User{{ID: 1, Role: model.RoleUser}}, nil
}

func (s adminFacadeStub) User(ctx context.Context, adminID, userID int64) (*model.User, error) {
	if s.UserFn != nil {
		return s.UserFn(ctx, adminID, userID)
	}
	return &model.User{ID: userID, Role: model.RoleUser}, nil
}

func (s adminFacadeStub) UpdateUser(ctx context.Context, adminID, userID int64, update repository.UserUpdate) (*model.User, error) {
	if s.UpdateUserFn != nil {
		return s.UpdateUserFn(ctx, adminID, userID, update)
	}
	return &model.User{ID: userID, Role: model.RoleUser}, nil
}

func (s adminFacadeStub) DeleteUser(ctx context.Context, adminID, userID int64) error {
	if s.DeleteUserFn != nil {
		return s.DeleteUserFn(ctx, adminID, userID)
	}
	return nil
}

type paymentFacadeStub struct {
	CreateIntentFn func(context.Context, int64, usecase.CheckoutInput) (*model.Order, *model.PaymentIntent, error)
	ConfirmFn      func(context.Context, int64, string) (*model.Order, error)
	WebhookFn      func(context.Context, usecase.WebhookEvent) error
	VerifyFn       func([]byte, string) bool
}

func (s paymentFacadeStub) CreatePaymentIntent(ctx context.Context, userID int64, in usecase.CheckoutInput) (*model.Order, *model.PaymentIntent, error) {
	if s.CreateIntentFn != nil {
		return s.CreateIntentFn(ctx, userID, in)
	}
	order := &model.Order{ID: 1, UserID: userID, Kind: model.OrderKindGateway, Status: model.OrderStatusPending, IntentID: "pi_1"}
	intent := &model.PaymentIntent{ID: "pi_1", ClientSecret: "cs_1", Status: model.IntentStatusProcessing}
	return order, intent, nil
}

func (s paymentFacadeStub) ConfirmPayment(ctx context.Context, userID int64, intentID string) (*model.Order, error) {
	if s.ConfirmFn != nil {
		return s.ConfirmFn(ctx, userID, intentID)
	}
	return &model.Order{ID: 1, UserID: userID, Status: model.OrderStatusCompleted, IntentID: intentID}, nil
}

func (s paymentFacadeStub) HandlePaymentWebhook(ctx context.Context, event usecase.WebhookEvent) error {
	if s.WebhookFn != nil {
		return s.WebhookFn(ctx, event)
	}
	return nil
}

func (s paymentFacadeStub) VerifyWebhookSignature(body []byte, signature string) bool {
	if s.VerifyFn != nil {
		return s.VerifyFn(body, signature)
	}
	return true
}

var (
	_ AuthFacade        = authFacadeStub{}
	_ CatalogFacade     = catalogFacadeStub{}
	_ OrderFacade       = orderFacadeStub{}
	_ EntitlementFacade = entitlementFacadeStub{}
	_ AdminFacade       = adminFacadeStub{}
	_ PaymentFacade     = paymentFacadeStub{}
)
