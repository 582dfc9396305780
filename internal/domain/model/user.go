package model

import "time"

// Role gates access to lifecycle and back-office operations.
type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleModerator:
		return true
	}
	return false
}

// User represents a registered customer or back-office operator.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role

	// Denormalized aggregates, always recomputed from purchases.
	TotalSpent    float64
	TotalProducts int

	LastLogin  *time.Time
	LoginCount int
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsAdmin reports whether the user may perform admin-only operations.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Purchase is an entitlement to a single product. A user holds at most one
// purchase per product.
type Purchase struct {
	ID             int64
	UserID         int64
	ProductID      int64
	ProductName    string
	Amount         float64
	LicenseKey     string
	DownloadCount  int
	LastDownloaded *time.Time
	PurchasedAt    time.Time
}
