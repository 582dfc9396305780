package model

import "time"

// OrderKind separates the two disjoint payment paths.
type OrderKind string

const (
	// OrderKindManual is operator-trust based: the customer declares a
	// transaction reference, an admin verifies or rejects it.
	OrderKindManual OrderKind = "manual"
	// OrderKindGateway is driven by the automated payment provider and is
	// never subject to admin verification.
	OrderKindGateway OrderKind = "gateway"
)

// OrderStatus describes order lifecycle. Manual orders move
// pending_verification -> verified|rejected; gateway orders move
// pending -> completed|failed.
type OrderStatus string

const (
	OrderStatusPendingVerification OrderStatus = "pending_verification"
	OrderStatusVerified            OrderStatus = "verified"
	OrderStatusRejected            OrderStatus = "rejected"

	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusFailed    OrderStatus = "failed"
)

// Valid reports whether the status is one of the known values.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPendingVerification, OrderStatusVerified, OrderStatusRejected,
		OrderStatusPending, OrderStatusCompleted, OrderStatusFailed:
		return true
	}
	return false
}

// OrderItem is a line item carrying intentional snapshots of product name and
// price at the time the cart was checked out.
type OrderItem struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductType ProductCategory
	ProductName string
	Price       float64
	Quantity    int
}

// Amount is the line total.
func (i OrderItem) Amount() float64 {
	return RoundPrice(i.Price * float64(i.Quantity))
}

// Order records a checkout attempt and its verification state.
type Order struct {
	ID          int64
	UserID      int64
	Kind        OrderKind
	Status      OrderStatus
	Items       []OrderItem
	TotalAmount float64

	PaymentMethod     string
	TransactionID     string
	PaymentScreenshot string
	IntentID          string

	// Contact fields denormalized from the user record at creation time.
	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	VerifiedBy      *int64
	VerifiedAt      *time.Time
	RejectionReason string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SumItems returns the total derivable from line-item snapshots.
func SumItems(items []OrderItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return RoundPrice(total)
}
