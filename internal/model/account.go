package model

import "time"

// Account represents a registered user.
//
// IsAdmin and IsSuperAdmin are independent flags. A super-admin is expected to
// also be an admin, but nothing enforces it.
type Account struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	IsSuperAdmin bool      `json:"is_super_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Username string `json:"username" form:"username" binding:"required,max=150"`
	Password string `json:"password" form:"password" binding:"required,max=72"`
}

// LoginRequest is the payload for establishing a session.
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required,max=150"`
	Password string `json:"password" form:"password" binding:"required,max=72"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Account   Account   `json:"account"`
}
