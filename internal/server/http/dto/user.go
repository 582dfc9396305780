package dto

import (
	"time"

	"github.com/cyberscripts/storefront/internal/domain/model"
)

// UserStats mirrors the derived spending aggregates.
type UserStats struct {
	TotalSpent    float64 `json:"totalSpent"`
	TotalProducts int     `json:"totalProducts"`
}

// UserResponse is the public account representation.
type UserResponse struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	Stats      UserStats  `json:"stats"`
	LastLogin  *time.Time `json:"lastLogin,omitempty"`
	LoginCount int        `json:"loginCount"`
	IsActive   bool       `json:"isActive"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// UserFromModel maps the domain user to its wire form.
func UserFromModel(u *model.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
		Stats: UserStats{
			TotalSpent:    u.TotalSpent,
			TotalProducts: u.TotalProducts,
		},
		LastLogin:  u.LastLogin,
		LoginCount: u.LoginCount,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
	}
}

// UsersFromModel maps a user slice.
func UsersFromModel(users []model.User) []UserResponse {
	result := make([]UserResponse, len(users))
	for i := range users {
		result[i] = UserFromModel(&users[i])
	}
	return result
}

// UpdateUserRequest carries optional admin edits to an account.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
}
