package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token type discriminators carried in JWT claims
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	Username       string `json:"username" binding:"required,min=3,max=50"`
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	OrganizationID string `json:"organization_id" binding:"required"`
}

// RefreshRequest represents the refresh token request body. The refresh token
// may come from the HttpOnly cookie instead, in which case the body is empty.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents the authentication response. The refresh token is
// delivered via HttpOnly cookie and duplicated here only on the explicit
// refresh endpoint.
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	User         *User  `json:"user,omitempty"`
}

// AccessClaims are the claims of a short-lived access token. Verified by
// signature and expiry only; no server-side state.
type AccessClaims struct {
	UserID    string `json:"userId"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// RefreshClaims are the claims of the refresh-token envelope: a signed JWT
// wrapping the opaque secret that is validated against the token store by its
// hash. The signature check cheaply rejects garbage before any store lookup.
type RefreshClaims struct {
	UserID    string `json:"userId"`
	TokenType string `json:"type"`
	Secret    string `json:"secret"`
	jwt.RegisteredClaims
}
