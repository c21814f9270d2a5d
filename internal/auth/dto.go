package auth

import "time"

// LoginRequest accepts either a username or an email together with a password.
type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail" validate:"required,min=3,max=255"`
	Password        string `json:"password" validate:"required,min=6,max=255"`
}

// RegisterRequest creates a new account. Role is optional and defaults to Staff.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=255"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=Admin Staff"`
}

// AuthResponse is returned after a successful login or registration.
type AuthResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}
