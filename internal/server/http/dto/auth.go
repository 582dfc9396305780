package dto

// RegisterRequest describes the signup payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest describes the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthData carries the issued token together with the account snapshot.
type AuthData struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
