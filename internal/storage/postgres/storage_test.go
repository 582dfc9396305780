package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/cyberscripts/storefront/internal/domain/errors"
	"github.com/cyberscripts/storefront/internal/domain/model"
)

func newMockStorage(t *testing.T) (*Storage, pgxmockv3.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmockv3.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	storage := &Storage{pool: mock, logger: logger}
	return storage, mock
}

func userRow(mock pgxmockv3.PgxPoolIface, u model.User) *pgxmockv3.Rows {
	return mock.NewRows([]string{"id", "name", "email", "password_hash", "role", "total_spent", "total_products", "last_login", "login_count", "is_active", "created_at", "updated_at"}).
		AddRow(u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.TotalSpent, u.TotalProducts, u.LastLogin, u.LoginCount, u.IsActive, u.CreatedAt, u.UpdatedAt)
}

func orderRow(mock pgxmockv3.PgxPoolIface, o model.Order) *pgxmockv3.Rows {
	return mock.NewRows([]string{"id", "user_id", "kind", "status", "total_amount", "payment_method", "transaction_id", "payment_screenshot", "intent_id",
		"customer_name", "customer_email", "customer_phone", "verified_by", "verified_at", "rejection_reason", "created_at", "updated_at"}).
		AddRow(o.ID, o.UserID, o.Kind, o.Status, o.TotalAmount, o.PaymentMethod, o.TransactionID, o.PaymentScreenshot, o.IntentID,
			o.CustomerName, o.CustomerEmail, o.CustomerPhone, o.VerifiedBy, o.VerifiedAt, o.RejectionReason, o.CreatedAt, o.UpdatedAt)
}

func itemRows(mock pgxmockv3.PgxPoolIface, items ...model.OrderItem) *pgxmockv3.Rows {
	rows := mock.NewRows([]string{"id", "order_id", "product_id", "product_type", "product_name", "price", "quantity"})
	for _, it := range items {
		rows.AddRow(it.ID, it.OrderID, it.ProductID, it.ProductType, it.ProductName, it.Price, it.Quantity)
	}
	return rows
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("Alice", "alice@example.com", "hash").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := storage.Users().Create(context.Background(), "Alice", "alice@example.com", "hash")
	if !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestUserGetByEmailNotFound(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email=").
		WithArgs("nobody@example.com").
		WillReturnRows(userRow(mock, model.User{ID: 1, Role: model.RoleUser, CreatedAt: time.Now(), UpdatedAt: time.Now()}))

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email=").
		WithArgs("ghost@example.com").
		WillReturnRows(mock.NewRows([]string{"id"}))

	if _, err := storage.Users().GetByEmail(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := storage.Users().GetByEmail(context.Background(), "ghost@example.com")
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGrantPurchaseAlreadyOwned(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO purchases").
		WithArgs(int64(1), int64(2), 49.99, "KEY").
		WillReturnResult(pgxmockv3.NewResult("INSERT", 0))
	mock.ExpectRollback()

	err := storage.Users().GrantPurchase(context.Background(), 1, 2, 49.99, "KEY")
	if !errors.Is(err, domainErrors.ErrAlreadyOwned) {
		t.Fatalf("expected ErrAlreadyOwned, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGrantPurchaseRecomputesStats(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO purchases").
		WithArgs(int64(1), int64(2), 49.99, "KEY").
		WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	mock.ExpectExec("UPDATE users").
		WithArgs(int64(1)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	if err := storage.Users().GrantPurchase(context.Background(), 1, 2, 49.99, "KEY"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRemovePurchaseNotOwned(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM purchases").
		WithArgs(int64(1), int64(2)).
		WillReturnResult(pgxmockv3.NewResult("DELETE", 0))
	mock.ExpectRollback()

	err := storage.Users().RemovePurchase(context.Background(), 1, 2)
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProductDeleteInUse(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(5)).
		WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	err := storage.Products().Delete(context.Background(), 5)
	if !errors.Is(err, domainErrors.ErrProductInUse) {
		t.Fatalf("expected ErrProductInUse, got %v", err)
	}
}

func TestProductDelete(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(5)).
		WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("DELETE FROM products").
		WithArgs(int64(5)).
		WillReturnResult(pgxmockv3.NewResult("DELETE", 1))
	mock.ExpectCommit()

	if err := storage.Products().Delete(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOrderVerifyHappyPath(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	now := time.Now()
	adminID := int64(9)
	item := model.OrderItem{ID: 1, OrderID: 10, ProductID: 3, ProductType: model.CategoryScript, ProductName: "Scanner", Price: 49.99, Quantity: 1}
	verified := model.Order{
		ID: 10, UserID: 2, Kind: model.OrderKindManual, Status: model.OrderStatusVerified,
		TotalAmount: 49.99, PaymentMethod: "upi", TransactionID: "TXN1",
		VerifiedBy: &adminID, VerifiedAt: &now, CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE orders").
		WithArgs(int64(10), adminID).
		WillReturnRows(mock.NewRows([]string{"user_id"}).AddRow(int64(2)))
	mock.ExpectQuery("SELECT id, order_id, product_id").
		WithArgs(int64(10)).
		WillReturnRows(itemRows(mock, item))
	mock.ExpectExec("INSERT INTO purchases").
		WithArgs(int64(2), int64(3), 49.99, pgxmockv3.AnyArg()).
		WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	mock.ExpectExec("UPDATE products SET sales").
		WithArgs(int64(3), 1, 49.99).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE users").
		WithArgs(int64(2)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectQuery("FROM orders WHERE id=").
		WithArgs(int64(10)).
		WillReturnRows(orderRow(mock, verified))
	mock.ExpectQuery("SELECT id, order_id, product_id").
		WithArgs(int64(10)).
		WillReturnRows(itemRows(mock, item))
	mock.ExpectCommit()

	order, err := storage.Orders().Verify(context.Background(), 10, adminID)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if order.Status != model.OrderStatusVerified {
		t.Fatalf("unexpected status: %s", order.Status)
	}
	if len(order.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(order.Items))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOrderVerifyAlreadyDecided(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE orders").
		WithArgs(int64(10), int64(9)).
		WillReturnRows(mock.NewRows([]string{"user_id"}))
	mock.ExpectQuery("SELECT status FROM orders").
		WithArgs(int64(10)).
		WillReturnRows(mock.NewRows([]string{"status"}).AddRow(model.OrderStatusRejected))
	mock.ExpectRollback()

	_, err := storage.Orders().Verify(context.Background(), 10, 9)
	var stateErr domainErrors.OrderStateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("expected OrderStateError, got %v", err)
	}
	if stateErr.Status != model.OrderStatusRejected {
		t.Fatalf("unexpected status in error: %s", stateErr.Status)
	}
}

func TestOrderVerifyNotFound(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE orders").
		WithArgs(int64(404), int64(9)).
		WillReturnRows(mock.NewRows([]string{"user_id"}))
	mock.ExpectQuery("SELECT status FROM orders").
		WithArgs(int64(404)).
		WillReturnRows(mock.NewRows([]string{"status"}))
	mock.ExpectRollback()

	_, err := storage.Orders().Verify(context.Background(), 404, 9)
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOrderRejectHappyPath(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	now := time.Now()
	adminID := int64(9)
	rejected := model.Order{
		ID: 10, UserID: 2, Kind: model.OrderKindManual, Status: model.OrderStatusRejected,
		TotalAmount: 49.99, PaymentMethod: "upi", TransactionID: "TXN1",
		VerifiedBy: &adminID, VerifiedAt: &now, RejectionReason: "bad screenshot",
		CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE orders").
		WithArgs(int64(10), adminID, "bad screenshot").
		WillReturnRows(mock.NewRows([]string{"user_id"}).AddRow(int64(2)))
	mock.ExpectQuery("FROM orders WHERE id=").
		WithArgs(int64(10)).
		WillReturnRows(orderRow(mock, rejected))
	mock.ExpectQuery("SELECT id, order_id, product_id").
		WithArgs(int64(10)).
		WillReturnRows(itemRows(mock))
	mock.ExpectCommit()

	order, err := storage.Orders().Reject(context.Background(), 10, adminID, "bad screenshot")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if order.RejectionReason != "bad screenshot" {
		t.Fatalf("unexpected reason: %q", order.RejectionReason)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOrderCompleteByIntent(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	now := time.Now()
	item := model.OrderItem{ID: 1, OrderID: 11, ProductID: 3, ProductType: model.CategoryCourse, ProductName: "Course", Price: 99, Quantity: 1}
	completed := model.Order{
		ID: 11, UserID: 2, Kind: model.OrderKindGateway, Status: model.OrderStatusCompleted,
		TotalAmount: 99, PaymentMethod: "card", IntentID: "pi_1",
		CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE orders").
		WithArgs("pi_1").
		WillReturnRows(mock.NewRows([]string{"id", "user_id"}).AddRow(int64(11), int64(2)))
	mock.ExpectQuery("SELECT id, order_id, product_id").
		WithArgs(int64(11)).
		WillReturnRows(itemRows(mock, item))
	mock.ExpectExec("INSERT INTO purchases").
		WithArgs(int64(2), int64(3), float64(99), pgxmockv3.AnyArg()).
		WillReturnResult(pgxmockv3.NewResult("INSERT", 1))
	mock.ExpectExec("UPDATE products SET sales").
		WithArgs(int64(3), 1, float64(99)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE users").
		WithArgs(int64(2)).
		WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	mock.ExpectQuery("FROM orders WHERE id=").
		WithArgs(int64(11)).
		WillReturnRows(orderRow(mock, completed))
	mock.ExpectQuery("SELECT id, order_id, product_id").
		WithArgs(int64(11)).
		WillReturnRows(itemRows(mock, item))
	mock.ExpectCommit()

	order, err := storage.Orders().CompleteByIntent(context.Background(), "pi_1")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if order.Status != model.OrderStatusCompleted {
		t.Fatalf("unexpected status: %s", order.Status)
	}
}

func TestOrderCompleteByIntentAlreadyCompleted(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE orders").
		WithArgs("pi_1").
		WillReturnRows(mock.NewRows([]string{"id", "user_id"}))
	mock.ExpectQuery("SELECT status FROM orders").
		WithArgs("pi_1").
		WillReturnRows(mock.NewRows([]string{"status"}).AddRow(model.OrderStatusCompleted))
	mock.ExpectRollback()

	_, err := storage.Orders().CompleteByIntent(context.Background(), "pi_1")
	var stateErr domainErrors.OrderStateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("expected OrderStateError, got %v", err)
	}
}

func TestOrderCreatePersistsItems(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	now := time.Now()
	order := &model.Order{
		UserID: 2, Kind: model.OrderKindManual, Status: model.OrderStatusPendingVerification,
		TotalAmount: 49.99, PaymentMethod: "upi", TransactionID: "TXN1",
		CustomerName: "Alice", CustomerEmail: "alice@example.com",
		Items: []model.OrderItem{
			{ProductID: 3, ProductType: model.CategoryScript, ProductName: "Scanner", Price: 49.99, Quantity: 1},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(order.UserID, order.Kind, order.Status, order.TotalAmount, order.PaymentMethod, order.TransactionID,
			order.PaymentScreenshot, order.IntentID, order.CustomerName, order.CustomerEmail, order.CustomerPhone).
		WillReturnRows(mock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(10), now, now))
	mock.ExpectQuery("INSERT INTO order_items").
		WithArgs(int64(10), order.Items[0].ProductID, order.Items[0].ProductType, order.Items[0].ProductName, order.Items[0].Price, order.Items[0].Quantity).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectCommit()

	created, err := storage.Orders().Create(context.Background(), order)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 10 {
		t.Fatalf("unexpected order id: %d", created.ID)
	}
	if len(created.Items) != 1 || created.Items[0].OrderID != 10 {
		t.Fatalf("unexpected items: %+v", created.Items)
	}
}

func TestHealthCheck(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()

	mock.ExpectPing()
	if err := storage.HealthCheck(context.Background()); err != nil {
		t.Fatalf("health check: %v", err)
	}
}
