package models

import "github.com/golang-jwt/jwt/v5"

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued token and the user's role.
type LoginResponse struct {
	Token     string `json:"token"`
	RoleID    int    `json:"role_id"`
	ExpiresIn int64  `json:"expires_in"`
}

// RegisterRequest creates a new application user.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
	RoleID   int    `json:"role_id" validate:"required,min=1"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID int64 `json:"user_id"`
	RoleID int   `json:"role_id"`
	jwt.RegisteredClaims
}
