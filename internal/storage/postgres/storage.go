package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/cyberscripts/storefront/internal/domain/errors"
	"github.com/cyberscripts/storefront/internal/domain/model"
	"github.com/cyberscripts/storefront/internal/domain/repository"
	"github.com/cyberscripts/storefront/internal/pkg/license"
)

// Pool abstracts pgxpool.Pool so storage can be exercised with pgxmock.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type productRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

var _ repository.Factory = (*Storage)(nil)

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'user',
            total_spent DOUBLE PRECISION NOT NULL DEFAULT 0,
            total_products INTEGER NOT NULL DEFAULT 0,
            last_login TIMESTAMPTZ,
            login_count INTEGER NOT NULL DEFAULT 0,
            is_active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            slug TEXT UNIQUE NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            category TEXT NOT NULL,
            price DOUBLE PRECISION NOT NULL,
            status TEXT NOT NULL DEFAULT 'draft',
            sales INTEGER NOT NULL DEFAULT 0,
            revenue DOUBLE PRECISION NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS purchases (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            product_id BIGINT NOT NULL REFERENCES products(id),
            amount DOUBLE PRECISION NOT NULL,
            license_key TEXT NOT NULL DEFAULT '',
            download_count INTEGER NOT NULL DEFAULT 0,
            last_downloaded TIMESTAMPTZ,
            purchased_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            UNIQUE (user_id, product_id)
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            kind TEXT NOT NULL DEFAULT 'manual',
            status TEXT NOT NULL,
            total_amount DOUBLE PRECISION NOT NULL,
            payment_method TEXT NOT NULL DEFAULT 'upi',
            transaction_id TEXT NOT NULL DEFAULT '',
            payment_screenshot TEXT NOT NULL DEFAULT '',
            intent_id TEXT NOT NULL DEFAULT '',
            customer_name TEXT NOT NULL DEFAULT '',
            customer_email TEXT NOT NULL DEFAULT '',
            customer_phone TEXT NOT NULL DEFAULT '',
            verified_by BIGINT REFERENCES users(id),
            verified_at TIMESTAMPTZ,
            rejection_reason TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
            product_id BIGINT NOT NULL REFERENCES products(id),
            product_type TEXT NOT NULL,
            product_name TEXT NOT NULL,
            price DOUBLE PRECISION NOT NULL,
            quantity INTEGER NOT NULL DEFAULT 1
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user_status ON orders(user_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created ON orders(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_intent ON orders(intent_id)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_purchases_user ON purchases(user_id, purchased_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// --- UserRepository implementation ---

const userColumns = `id, name, email, password_hash, role, total_spent, total_products, last_login, login_count, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.TotalSpent, &u.TotalProducts, &u.LastLogin, &u.LoginCount, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	const query = `INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3)
                   RETURNING id, role, is_active, created_at, updated_at`
	u := model.User{Name: name, Email: email, PasswordHash: passwordHash}
	err := r.storage.pool.QueryRow(ctx, query, name, email, passwordHash).Scan(&u.ID, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.TotalSpent, &u.TotalProducts, &u.LastLogin, &u.LoginCount, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *userRepository) Update(ctx context.Context, id int64, update repository.UserUpdate) (*model.User, error) {
	var role *string
	if update.Role != nil {
		v := string(*update.Role)
		role = &v
	}
	query := `UPDATE users
              SET name = COALESCE($2, name),
                  role = COALESCE($3, role),
                  is_active = COALESCE($4, is_active),
                  updated_at = NOW()
              WHERE id=$1
              RETURNING ` + userColumns
	return scanUser(r.storage.pool.QueryRow(ctx, query, id, update.Name, role, update.IsActive))
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) RecordLogin(ctx context.Context, id int64) error {
	const query = `UPDATE users SET last_login=NOW(), login_count=login_count+1, updated_at=NOW() WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) GrantPurchase(ctx context.Context, userID, productID int64, amount float64, licenseKey string) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		granted, err := grantPurchaseTx(ctx, tx, userID, productID, amount, licenseKey)
		if err != nil {
			return err
		}
		if !granted {
			return domainErrors.ErrAlreadyOwned
		}
		return recomputeStatsTx(ctx, tx, userID)
	})
}

func (r *userRepository) RemovePurchase(ctx context.Context, userID, productID int64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM purchases WHERE user_id=$1 AND product_id=$2`, userID, productID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		return recomputeStatsTx(ctx, tx, userID)
	})
}

func (r *userRepository) ListPurchases(ctx context.Context, userID int64) ([]model.Purchase, error) {
	const query = `SELECT p.id, p.user_id, p.product_id, pr.name, p.amount, p.license_key, p.download_count, p.last_downloaded, p.purchased_at
                   FROM purchases p
                   JOIN products pr ON pr.id = p.product_id
                   WHERE p.user_id=$1
                   ORDER BY p.purchased_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Purchase
	for rows.Next() {
		var p model.Purchase
		if err := rows.Scan(&p.ID, &p.UserID, &p.ProductID, &p.ProductName, &p.Amount, &p.LicenseKey, &p.DownloadCount, &p.LastDownloaded, &p.PurchasedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *userRepository) HasPurchase(ctx context.Context, userID, productID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM purchases WHERE user_id=$1 AND product_id=$2)`
	var exists bool
	if err := r.storage.pool.QueryRow(ctx, query, userID, productID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// grantPurchaseTx appends an entitlement unless the user already holds the
// product. The unique constraint makes duplicate grants across concurrent
// orders impossible.
func grantPurchaseTx(ctx context.Context, tx pgx.Tx, userID, productID int64, amount float64, licenseKey string) (bool, error) {
	const query = `INSERT INTO purchases (user_id, product_id, amount, license_key)
                   VALUES ($1, $2, $3, $4)
                   ON CONFLICT (user_id, product_id) DO NOTHING`
	tag, err := tx.Exec(ctx, query, userID, productID, amount, licenseKey)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// recomputeStatsTx rebuilds the denormalized user aggregates from purchases so
// they can never drift from the derivable sums.
func recomputeStatsTx(ctx context.Context, tx pgx.Tx, userID int64) error {
	const query = `UPDATE users
                   SET total_spent = (SELECT COALESCE(SUM(amount), 0) FROM purchases WHERE user_id=$1),
                       total_products = (SELECT COUNT(*) FROM purchases WHERE user_id=$1),
                       updated_at = NOW()
                   WHERE id=$1`
	_, err := tx.Exec(ctx, query, userID)
	return err
}

// --- ProductRepository implementation ---

const productColumns = `id, name, slug, description, category, price, status, sales, revenue, created_at, updated_at`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Category, &p.Price, &p.Status, &p.Sales, &p.Revenue, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	const query = `INSERT INTO products (name, slug, description, category, price, status)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING id, sales, revenue, created_at, updated_at`
	created := *product
	err := r.storage.pool.QueryRow(ctx, query, product.Name, product.Slug, product.Description, product.Category, product.Price, product.Status).
		Scan(&created.ID, &created.Sales, &created.Revenue, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	return scanProduct(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *productRepository) ListPublished(ctx context.Context) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE status='published' ORDER BY created_at DESC`
	return r.queryProducts(ctx, query)
}

func (r *productRepository) List(ctx context.Context, category model.ProductCategory) ([]model.Product, error) {
	if category == "" {
		query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
		return r.queryProducts(ctx, query)
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE category=$1 ORDER BY created_at DESC`
	return r.queryProducts(ctx, query, category)
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Category, &p.Price, &p.Status, &p.Sales, &p.Revenue, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) (*model.Product, error) {
	query := `UPDATE products
              SET name=$2, slug=$3, description=$4, category=$5, price=$6, status=$7, updated_at=NOW()
              WHERE id=$1
              RETURNING ` + productColumns
	return scanProduct(r.storage.pool.QueryRow(ctx, query, product.ID, product.Name, product.Slug, product.Description, product.Category, product.Price, product.Status))
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const openQuery = `SELECT EXISTS(
                             SELECT 1 FROM order_items i
                             JOIN orders o ON o.id = i.order_id
                             WHERE i.product_id=$1 AND o.status IN ('pending_verification', 'pending'))`
		var inUse bool
		if err := tx.QueryRow(ctx, openQuery, id).Scan(&inUse); err != nil {
			return err
		}
		if inUse {
			return domainErrors.ErrProductInUse
		}

		tag, err := tx.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		return nil
	})
}

// --- OrderRepository implementation ---

const orderColumns = `id, user_id, kind, status, total_amount, payment_method, transaction_id, payment_screenshot, intent_id,
                      customer_name, customer_email, customer_phone, verified_by, verified_at, rejection_reason, created_at, updated_at`

type rowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.UserID, &o.Kind, &o.Status, &o.TotalAmount, &o.PaymentMethod, &o.TransactionID, &o.PaymentScreenshot, &o.IntentID,
		&o.CustomerName, &o.CustomerEmail, &o.CustomerPhone, &o.VerifiedBy, &o.VerifiedAt, &o.RejectionReason, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	created := *order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders (user_id, kind, status, total_amount, payment_method, transaction_id, payment_screenshot, intent_id,
                                                 customer_name, customer_email, customer_phone)
                             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
                             RETURNING id, created_at, updated_at`
		err := tx.QueryRow(ctx, insertOrder,
			order.UserID, order.Kind, order.Status, order.TotalAmount, order.PaymentMethod, order.TransactionID, order.PaymentScreenshot, order.IntentID,
			order.CustomerName, order.CustomerEmail, order.CustomerPhone,
		).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
		if err != nil {
			return err
		}

		const insertItem = `INSERT INTO order_items (order_id, product_id, product_type, product_name, price, quantity)
                            VALUES ($1, $2, $3, $4, $5, $6)
                            RETURNING id`
		created.Items = make([]model.OrderItem, len(order.Items))
		for i, item := range order.Items {
			item.OrderID = created.ID
			if err := tx.QueryRow(ctx, insertItem, created.ID, item.ProductID, item.ProductType, item.ProductName, item.Price, item.Quantity).Scan(&item.ID); err != nil {
				return err
			}
			created.Items[i] = item
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	return r.getOrder(ctx, r.storage.pool, `WHERE id=$1`, id)
}

func (r *orderRepository) GetByIntentID(ctx context.Context, intentID string) (*model.Order, error) {
	return r.getOrder(ctx, r.storage.pool, `WHERE intent_id=$1`, intentID)
}

func (r *orderRepository) getOrder(ctx context.Context, q rowQuerier, where string, args ...any) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ` + where
	order, err := scanOrder(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	items, err := loadItems(ctx, q, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	return r.queryOrders(ctx, query, userID)
}

func (r *orderRepository) List(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	if status == "" {
		query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
		return r.queryOrders(ctx, query)
	}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE status=$1 ORDER BY created_at DESC`
	return r.queryOrders(ctx, query, status)
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Kind, &o.Status, &o.TotalAmount, &o.PaymentMethod, &o.TransactionID, &o.PaymentScreenshot, &o.IntentID,
			&o.CustomerName, &o.CustomerEmail, &o.CustomerPhone, &o.VerifiedBy, &o.VerifiedAt, &o.RejectionReason, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		items, err := loadItems(ctx, r.storage.pool, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Items = items
	}
	return result, nil
}

func loadItems(ctx context.Context, q rowQuerier, orderID int64) ([]model.OrderItem, error) {
	const query = `SELECT id, order_id, product_id, product_type, product_name, price, quantity
                   FROM order_items WHERE order_id=$1 ORDER BY id`
	rows, err := q.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductType, &it.ProductName, &it.Price, &it.Quantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Verify flips a pending manual order to verified and grants entitlements in
// the same transaction: a reader can never observe one without the other. The
// status predicate in the UPDATE is the compare-and-set that lets exactly one
// of two concurrent admin actions win.
func (r *orderRepository) Verify(ctx context.Context, orderID, adminID int64) (*model.Order, error) {
	var verified *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const cas = `UPDATE orders
                     SET status='verified', verified_by=$2, verified_at=NOW(), updated_at=NOW()
                     WHERE id=$1 AND kind='manual' AND status='pending_verification'
                     RETURNING user_id`
		var userID int64
		if err := tx.QueryRow(ctx, cas, orderID, adminID).Scan(&userID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return resolveStateConflict(ctx, tx, orderID)
			}
			return err
		}

		items, err := loadItems(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if err := grantItemsTx(ctx, tx, userID, items); err != nil {
			return err
		}
		if err := recomputeStatsTx(ctx, tx, userID); err != nil {
			return err
		}

		verified, err = r.getOrder(ctx, tx, `WHERE id=$1`, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return verified, nil
}

// Reject flips a pending manual order to rejected. No entitlement or stats
// mutation happens.
func (r *orderRepository) Reject(ctx context.Context, orderID, adminID int64, reason string) (*model.Order, error) {
	var rejected *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const cas = `UPDATE orders
                     SET status='rejected', verified_by=$2, verified_at=NOW(), rejection_reason=$3, updated_at=NOW()
                     WHERE id=$1 AND kind='manual' AND status='pending_verification'
                     RETURNING user_id`
		var userID int64
		if err := tx.QueryRow(ctx, cas, orderID, adminID, reason).Scan(&userID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return resolveStateConflict(ctx, tx, orderID)
			}
			return err
		}

		var err error
		rejected, err = r.getOrder(ctx, tx, `WHERE id=$1`, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rejected, nil
}

func (r *orderRepository) CompleteByIntent(ctx context.Context, intentID string) (*model.Order, error) {
	var completed *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const cas = `UPDATE orders
                     SET status='completed', updated_at=NOW()
                     WHERE intent_id=$1 AND kind='gateway' AND status='pending'
                     RETURNING id, user_id`
		var orderID, userID int64
		if err := tx.QueryRow(ctx, cas, intentID).Scan(&orderID, &userID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return resolveIntentConflict(ctx, tx, intentID)
			}
			return err
		}

		items, err := loadItems(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if err := grantItemsTx(ctx, tx, userID, items); err != nil {
			return err
		}
		if err := recomputeStatsTx(ctx, tx, userID); err != nil {
			return err
		}

		completed, err = r.getOrder(ctx, tx, `WHERE id=$1`, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return completed, nil
}

func (r *orderRepository) FailByIntent(ctx context.Context, intentID string) (*model.Order, error) {
	var failed *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const cas = `UPDATE orders
                     SET status='failed', updated_at=NOW()
                     WHERE intent_id=$1 AND kind='gateway' AND status='pending'
                     RETURNING id`
		var orderID int64
		if err := tx.QueryRow(ctx, cas, intentID).Scan(&orderID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return resolveIntentConflict(ctx, tx, intentID)
			}
			return err
		}

		var err error
		failed, err = r.getOrder(ctx, tx, `WHERE id=$1`, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return failed, nil
}

func (r *orderRepository) SelectStalePending(ctx context.Context, age time.Duration, limit int) ([]model.Order, error) {
	cutoff := time.Now().Add(-age)
	query := `SELECT ` + orderColumns + `
              FROM orders
              WHERE kind='gateway' AND status='pending' AND created_at < $1
              ORDER BY created_at
              LIMIT $2`
	return r.queryOrders(ctx, query, cutoff, limit)
}

// grantItemsTx grants one entitlement per distinct product in the order. The
// amount recorded is the line total; duplicates already owned are skipped and
// only freshly granted items count toward product sales.
func grantItemsTx(ctx context.Context, tx pgx.Tx, userID int64, items []model.OrderItem) error {
	for _, item := range items {
		granted, err := grantPurchaseTx(ctx, tx, userID, item.ProductID, item.Amount(), license.NewKey())
		if err != nil {
			return err
		}
		if !granted {
			continue
		}
		const bumpProduct = `UPDATE products SET sales=sales+$2, revenue=revenue+$3, updated_at=NOW() WHERE id=$1`
		if _, err := tx.Exec(ctx, bumpProduct, item.ProductID, item.Quantity, item.Amount()); err != nil {
			return err
		}
	}
	return nil
}

// resolveStateConflict distinguishes a missing order from one that lost the
// compare-and-set; the loser learns the current status.
func resolveStateConflict(ctx context.Context, tx pgx.Tx, orderID int64) error {
	var status model.OrderStatus
	if err := tx.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1`, orderID).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainErrors.ErrNotFound
		}
		return err
	}
	return domainErrors.OrderStateError{Status: status}
}

func resolveIntentConflict(ctx context.Context, tx pgx.Tx, intentID string) error {
	var status model.OrderStatus
	if err := tx.QueryRow(ctx, `SELECT status FROM orders WHERE intent_id=$1`, intentID).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainErrors.ErrNotFound
		}
		return err
	}
	return domainErrors.OrderStateError{Status: status}
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
