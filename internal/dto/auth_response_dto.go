package dto

import "time"

// LoginRequest is the request body for password login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the response for a successful login or session refresh.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// RefreshTokenResponse is the response for a successful session token refresh.
type RefreshTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// GoogleAuthRequest carries a Google credential obtained client-side: either an
// ID token from Google Identity Services or an authorization code. The consent
// screen itself never touches this backend.
type GoogleAuthRequest struct {
	IDToken string `json:"idToken,omitempty"`
	Code    string `json:"code,omitempty"`
}
