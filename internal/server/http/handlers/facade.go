package handlers

import (
	"context"

	"github.com/cyberscripts/storefront/internal/domain/model"
	"github.com/cyberscripts/storefront/internal/domain/repository"
	pkgAuth "github.com/cyberscripts/storefront/internal/pkg/auth"
	"github.com/cyberscripts/storefront/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, name, email, password string) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	ParseToken(token string) (*pkgAuth.Identity, error)
	Profile(ctx context.Context, userID int64) (*model.User, error)
}

// CatalogFacade exposes the product catalog.
type CatalogFacade interface {
	Storefront(ctx context.Context) ([]model.Product, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
	Products(ctx context.Context, category model.ProductCategory) ([]model.Product, error)
	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, id int64, update usecase.ProductUpdate) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// OrderFacade encapsulates order lifecycle operations exposed via HTTP.
type OrderFacade interface {
	Checkout(ctx context.Context, userID int64, in usecase.CheckoutInput) (*model.Order, error)
	Order(ctx context.Context, id, callerID int64) (*model.Order, error)
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	AllOrders(ctx context.Context, adminID int64, status model.OrderStatus) ([]model.Order, error)
	VerifyOrder(ctx context.Context, orderID, adminID int64) (*model.Order, error)
	RejectOrder(ctx context.Context, orderID, adminID int64, reason string) (*model.Order, error)
}

// EntitlementFacade exposes purchase listings and admin grants.
type EntitlementFacade interface {
	Purchases(ctx context.Context, userID int64) ([]model.Purchase, error)
	AssignProduct(ctx context.Context, adminID, userID, productID int64, category model.ProductCategory) error
	RemoveProduct(ctx context.Context, adminID, userID, productID int64) error
}

// AdminFacade exposes back-office user management.
type AdminFacade interface {
	Users(ctx context.Context, adminID int64) ([]model.User, error)
	User(ctx context.Context, adminID, userID int64) (*model.User, error)
	UpdateUser(ctx context.Context, adminID, userID int64, update repository.UserUpdate) (*model.User, error)
	DeleteUser(ctx context.Context, adminID, userID int64) error
}

// PaymentFacade exposes the automated gateway flow.
type PaymentFacade interface {
	CreatePaymentIntent(ctx context.Context, userID int64, in usecase.CheckoutInput) (*model.Order, *model.PaymentIntent, error)
	ConfirmPayment(ctx context.Context, userID int64, intentID string) (*model.Order, error)
	HandlePaymentWebhook(ctx context.Context, event usecase.WebhookEvent) error
	VerifyWebhookSignature(body []byte, signature string) bool
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	AuthFacade
	CatalogFacade
	OrderFacade
	EntitlementFacade
	AdminFacade
	PaymentFacade
}
