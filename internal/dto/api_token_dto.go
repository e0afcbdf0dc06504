package dto

import (
	"time"

	"github.com/wayfare-app/wayfare_backend/internal/core/domain"
)

// CreateAPITokenRequest is the request body for issuing a scoped API token.
type CreateAPITokenRequest struct {
	Description string `json:"description" binding:"required,min=1,max=200"`
	// Scopes must be a non-empty subset of the recognized scope vocabulary.
	Scopes []string `json:"scopes" binding:"required,min=1"`
	// ExpiryDays 1-730; omitted or zero means the default of 365.
	ExpiryDays int `json:"expiryDays,omitempty" binding:"omitempty,min=1,max=730"`
	// GenerateRefreshToken requests an opaque refresh secret alongside the JWT.
	GenerateRefreshToken bool `json:"generateRefreshToken,omitempty"`
}

// CreateAPITokenResponse is returned once at issuance. AccessToken and
// RefreshToken are never retrievable again.
type CreateAPITokenResponse struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	TokenType    string    `json:"tokenType"` // always "Bearer"
	ExpiresIn    int64     `json:"expiresIn"` // seconds until expiry
	ExpiresAt    time.Time `json:"expiresAt"`
	Scopes       []string  `json:"scopes"`
	TokenID      string    `json:"tokenId"`
	Description  string    `json:"description"`
}

// APITokenResponse is the registry metadata of a token; it never contains the
// signed JWT or refresh secret.
type APITokenResponse struct {
	TokenID     string     `json:"tokenId"`
	Description string     `json:"description"`
	Scopes      []string   `json:"scopes"`
	CreatedAt   time.Time  `json:"createdAt"`
	ExpiresAt   time.Time  `json:"expiresAt"`
	Revoked     bool       `json:"revoked"`
	UsageCount  int64      `json:"usageCount"`
	LastUsedAt  *time.Time `json:"lastUsedAt,omitempty"`
	LastUsedIP  *string    `json:"lastUsedIP,omitempty"`
}

// RefreshAPITokenRequest exchanges a refresh secret for a new access JWT.
type RefreshAPITokenRequest struct {
	TokenID      string `json:"tokenId" binding:"required"`
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshAPITokenResponse carries the replacement access JWT.
type RefreshAPITokenResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// ToAPITokenResponse converts a registry record to its response form.
func ToAPITokenResponse(t domain.APIToken) APITokenResponse {
	return APITokenResponse{
		TokenID:     t.TokenID,
		Description: t.Description,
		Scopes:      t.Scopes,
		CreatedAt:   t.CreatedAt,
		ExpiresAt:   t.ExpiresAt,
		Revoked:     t.Revoked,
		UsageCount:  t.UsageCount,
		LastUsedAt:  t.LastUsedAt,
		LastUsedIP:  t.LastUsedIP,
	}
}

// ToAPITokenResponseList converts a slice of registry records.
func ToAPITokenResponseList(tokens []domain.APIToken) []APITokenResponse {
	out := make([]APITokenResponse, len(tokens))
	for i, t := range tokens {
		out[i] = ToAPITokenResponse(t)
	}
	return out
}
