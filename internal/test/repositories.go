package test

import (
	"context"
	"time"

	domainErrors "github.com/cyberscripts/storefront/internal/domain/errors"
	"github.com/cyberscripts/storefront/internal/domain/model"
	"github.com/cyberscripts/storefront/internal/domain/repository"
)

// UserRepositoryStub stores users and purchases in-memory for tests.
type UserRepositoryStub struct {
	ByEmail   map[string]*model.User
	ByID      map[int64]*model.User
	Purchases map[int64][]model.Purchase
	Next      int64
	Err       error

	RecordedLogins []int64
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		ByEmail:   make(map[string]*model.User),
		ByID:      make(map[int64]*model.User),
		Purchases: make(map[int64][]model.Purchase),
		Next:      1,
	}
}

// Seed inserts a prebuilt user, assigning an ID when absent.
func (s *UserRepositoryStub) Seed(user model.User) *model.User {
	if user.ID == 0 {
		user.ID = s.Next
		s.Next++
	} else if user.ID >= s.Next {
		s.Next = user.ID + 1
	}
	u := user
	s.ByEmail[u.Email] = &u
	s.ByID[u.ID] = &u
	return &u
}

// Create registers a user unless the email is taken.
func (s *UserRepositoryStub) Create(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.ByEmail[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	return s.Seed(model.User{Name: name, Email: email, PasswordHash: passwordHash, Role: model.RoleUser, IsActive: true}), nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByEmail[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns every stored user.
func (s *UserRepositoryStub) List(ctx context.Context) ([]model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	users := make([]model.User, 0, len(s.ByID))
	for _, u := range s.ByID {
		users = append(users, *u)
	}
	return users, nil
}

// Update applies non-nil fields to the stored user.
func (s *UserRepositoryStub) Update(ctx context.Context, id int64, update repository.UserUpdate) (*model.User, error) {
	user, ok := s.ByID[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Role != nil {
		user.Role = *update.Role
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}
	return user, nil
}

// Delete removes the stored user.
func (s *UserRepositoryStub) Delete(ctx context.Context, id int64) error {
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.ByEmail, user.Email)
	delete(s.ByID, id)
	return nil
}

// RecordLogin tracks login bookkeeping calls.
func (s *UserRepositoryStub) RecordLogin(ctx context.Context, id int64) error {
	if _, ok := s.ByID[id]; !ok {
		return domainErrors.ErrNotFound
	}
	s.RecordedLogins = append(s.RecordedLogins, id)
	s.ByID[id].LoginCount++
	return nil
}

// GrantPurchase appends an entitlement and recomputes stats, mirroring the
// real repository's duplicate guard.
func (s *UserRepositoryStub) GrantPurchase(ctx context.Context, userID, productID int64, amount float64, licenseKey string) error {
	user, ok := s.ByID[userID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	for _, p := range s.Purchases[userID] {
		if p.ProductID == productID {
			return domainErrors.ErrAlreadyOwned
		}
	}
	s.Purchases[userID] = append(s.Purchases[userID], model.Purchase{
		UserID: userID, ProductID: productID, Amount: amount, LicenseKey: licenseKey, PurchasedAt: time.Now(),
	})
	s.recompute(user)
	return nil
}

// RemovePurchase drops the entitlement and recomputes stats.
func (s *UserRepositoryStub) RemovePurchase(ctx context.Context, userID, productID int64) error {
	user, ok := s.ByID[userID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	purchases := s.Purchases[userID]
	for i, p := range purchases {
		if p.ProductID == productID {
			s.Purchases[userID] = append(purchases[:i], purchases[i+1:]...)
			s.recompute(user)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// ListPurchases returns the stored entitlements.
func (s *UserRepositoryStub) ListPurchases(ctx context.Context, userID int64) ([]model.Purchase, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Purchases[userID], nil
}

// HasPurchase reports entitlement ownership.
func (s *UserRepositoryStub) HasPurchase(ctx context.Context, userID, productID int64) (bool, error) {
	for _, p := range s.Purchases[userID] {
		if p.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (s *UserRepositoryStub) recompute(user *model.User) {
	var spent float64
	for _, p := range s.Purchases[user.ID] {
		spent += p.Amount
	}
	user.TotalSpent = spent
	user.TotalProducts = len(s.Purchases[user.ID])
}

// ProductRepositoryStub stores catalog entries in-memory.
type ProductRepositoryStub struct {
	Products map[int64]*model.Product
	Next     int64
	Err      error
	InUse    map[int64]bool
}

// NewProductRepositoryStub constructs stub repository with initialized maps.
func NewProductRepositoryStub() *ProductRepositoryStub {
	return &ProductRepositoryStub{
		Products: make(map[int64]*model.Product),
		InUse:    make(map[int64]bool),
		Next:     1,
	}
}

// Seed inserts a prebuilt product, assigning an ID when absent.
func (s *ProductRepositoryStub) Seed(product model.Product) *model.Product {
	if product.ID == 0 {
		product.ID = s.Next
		s.Next++
	} else if product.ID >= s.Next {
		s.Next = product.ID + 1
	}
	p := product
	s.Products[p.ID] = &p
	return &p
}

// Create stores the product unless the slug collides.
func (s *ProductRepositoryStub) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, existing := range s.Products {
		if existing.Slug == product.Slug {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	return s.Seed(*product), nil
}

// GetByID fetches product or returns not found.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if p, ok := s.Products[id]; ok {
		product := *p
		return &product, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListPublished returns only published entries.
func (s *ProductRepositoryStub) ListPublished(ctx context.Context) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Product
	for _, p := range s.Products {
		if p.Status == model.ProductStatusPublished {
			result = append(result, *p)
		}
	}
	return result, nil
}

// List returns entries, optionally filtered by category.
func (s *ProductRepositoryStub) List(ctx context.Context, category model.ProductCategory) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Product
	for _, p := range s.Products {
		if category == "" || p.Category == category {
			result = append(result, *p)
		}
	}
	return result, nil
}

// Update replaces the stored product.
func (s *ProductRepositoryStub) Update(ctx context.Context, product *model.Product) (*model.Product, error) {
	if _, ok := s.Products[product.ID]; !ok {
		return nil, domainErrors.ErrNotFound
	}
	p := *product
	s.Products[p.ID] = &p
	return &p, nil
}

// Delete removes the product unless flagged as referenced by open orders.
func (s *ProductRepositoryStub) Delete(ctx context.Context, id int64) error {
	if _, ok := s.Products[id]; !ok {
		return domainErrors.ErrNotFound
	}
	if s.InUse[id] {
		return domainErrors.ErrProductInUse
	}
	delete(s.Products, id)
	return nil
}

// OrderRepositoryStub allows tests to customize order persistence behaviour.
type OrderRepositoryStub struct {
	CreateFn             func(context.Context, *model.Order) (*model.Order, error)
	GetByIDFn            func(context.Context, int64) (*model.Order, error)
	GetByIntentIDFn      func(context.Context, string) (*model.Order, error)
	ListByUserFn         func(context.Context, int64) ([]model.Order, error)
	ListFn               func(context.Context, model.OrderStatus) ([]model.Order, error)
	VerifyFn             func(context.Context, int64, int64) (*model.Order, error)
	RejectFn             func(context.Context, int64, int64, string) (*model.Order, error)
	CompleteByIntentFn   func(context.Context, string) (*model.Order, error)
	FailByIntentFn       func(context.Context, string) (*model.Order, error)
	SelectStalePendingFn func(context.Context, time.Duration, int) ([]model.Order, error)

	Created []model.Order
	Orders  []model.Order

	RejectCalls []RejectCall
}

// RejectCall records arguments of a Reject invocation.
type RejectCall struct {
	OrderID int64
	AdminID int64
	Reason  string
}

// Create tracks invocations and returns configured responses.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	s.Created = append(s.Created, *order)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	created := *order
	created.ID = int64(len(s.Created))
	return &created, nil
}

// GetByID returns matched order via override or stored slice.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByIntentID returns matched order via override or stored slice.
func (s *OrderRepositoryStub) GetByIntentID(ctx context.Context, intentID string) (*model.Order, error) {
	if s.GetByIntentIDFn != nil {
		return s.GetByIntentIDFn(ctx, intentID)
	}
	for _, o := range s.Orders {
		if o.IntentID == intentID {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns orders from configured slice.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	var result []model.Order
	for _, o := range s.Orders {
		if o.UserID == userID {
			result = append(result, o)
		}
	}
	return result, nil
}

// List returns orders, optionally filtered by status.
func (s *OrderRepositoryStub) List(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, status)
	}
	if status == "" {
		return s.Orders, nil
	}
	var result []model.Order
	for _, o := range s.Orders {
		if o.Status == status {
			result = append(result, o)
		}
	}
	return result, nil
}

// Verify delegates to the override or flips the stored order.
func (s *OrderRepositoryStub) Verify(ctx context.Context, orderID, adminID int64) (*model.Order, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, orderID, adminID)
	}
	for i := range s.Orders {
		if s.Orders[i].ID == orderID {
			if s.Orders[i].Status != model.OrderStatusPendingVerification {
				return nil, domainErrors.OrderStateError{Status: s.Orders[i].Status}
			}
			now := time.Now()
			s.Orders[i].Status = model.OrderStatusVerified
			s.Orders[i].VerifiedBy = &adminID
			s.Orders[i].VerifiedAt = &now
			order := s.Orders[i]
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// Reject records arguments and flips the stored order.
func (s *OrderRepositoryStub) Reject(ctx context.Context, orderID, adminID int64, reason string) (*model.Order, error) {
	s.RejectCalls = append(s.RejectCalls, RejectCall{OrderID: orderID, AdminID: adminID, Reason: reason})
	if s.RejectFn != nil {
		return s.RejectFn(ctx, orderID, adminID, reason)
	}
	for i := range s.Orders {
		if s.Orders[i].ID == orderID {
			if s.Orders[i].Status != model.OrderStatusPendingVerification {
				return nil, domainErrors.OrderStateError{Status: s.Orders[i].Status}
			}
			now := time.Now()
			s.Orders[i].Status = model.OrderStatusRejected
			s.Orders[i].VerifiedBy = &adminID
			s.Orders[i].VerifiedAt = &now
			s.Orders[i].RejectionReason = reason
			order := s.Orders[i]
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// CompleteByIntent settles the stored gateway order.
func (s *OrderRepositoryStub) CompleteByIntent(ctx context.Context, intentID string) (*model.Order, error) {
	if s.CompleteByIntentFn != nil {
		return s.CompleteByIntentFn(ctx, intentID)
	}
	return s.settleByIntent(intentID, model.OrderStatusCompleted)
}

// FailByIntent fails the stored gateway order.
func (s *OrderRepositoryStub) FailByIntent(ctx context.Context, intentID string) (*model.Order, error) {
	if s.FailByIntentFn != nil {
		return s.FailByIntentFn(ctx, intentID)
	}
	return s.settleByIntent(intentID, model.OrderStatusFailed)
}

func (s *OrderRepositoryStub) settleByIntent(intentID string, status model.OrderStatus) (*model.Order, error) {
	for i := range s.Orders {
		if s.Orders[i].IntentID == intentID {
			if s.Orders[i].Status != model.OrderStatusPending {
				return nil, domainErrors.OrderStateError{Status: s.Orders[i].Status}
			}
			s.Orders[i].Status = status
			order := s.Orders[i]
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// SelectStalePending returns configured stale orders.
func (s *OrderRepositoryStub) SelectStalePending(ctx context.Context, age time.Duration, limit int) ([]model.Order, error) {
	if s.SelectStalePendingFn != nil {
		return s.SelectStalePendingFn(ctx, age, limit)
	}
	var result []model.Order
	for _, o := range s.Orders {
		if o.Kind == model.OrderKindGateway && o.Status == model.OrderStatusPending {
			result = append(result, o)
			if len(result) == limit {
				break
			}
		}
	}
	return result, nil
}
