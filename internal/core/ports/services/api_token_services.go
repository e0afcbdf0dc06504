package services

import (
	"context"

	"github.com/wayfare-app/wayfare_backend/internal/core/domain"
)

// APITokenIssuance holds the artifacts of a successful token generation. The
// AccessToken and RefreshToken values are shown exactly once; only the record
// survives.
type APITokenIssuance struct {
	AccessToken  string
	RefreshToken string // empty unless requested
	Record       domain.APIToken
}

// APITokenSvc defines issuance, validation and revocation of scoped API tokens.
type APITokenSvc interface {
	// CreateToken mints a signed API token JWT and persists its registry record.
	// description must be non-empty; scopes must be a non-empty subset of the
	// recognized vocabulary; expiryDays 1-730, 0 meaning the default (365).
	// Violations return apperrors.ErrValidation and persist nothing.
	CreateToken(ctx context.Context, userID, description string, scopes []string, expiryDays int, wantRefreshToken bool) (*APITokenIssuance, error)

	// ListTokens returns the registry metadata of all tokens owned by a user.
	ListTokens(ctx context.Context, userID string) ([]domain.APIToken, error)

	// RevokeToken terminally revokes a token. apperrors.ErrNotFound if no record
	// exists, apperrors.ErrForbidden if callerID does not own it. Idempotent on
	// an already revoked token.
	RevokeToken(ctx context.Context, callerID, tokenID string) error

	// ValidateToken runs both validation phases (JWT then registry), records
	// usage atomically and returns an API token principal carrying the scopes
	// embedded in the JWT.
	ValidateToken(ctx context.Context, tokenString string, clientIP string) (*domain.Principal, error)

	// RefreshAccessToken exchanges a previously issued refresh secret for a new
	// access JWT on the same registry record. Fails with
	// apperrors.ErrUnauthorized when the record is revoked, expired, has no
	// refresh secret, or the secret does not match.
	RefreshAccessToken(ctx context.Context, tokenID, refreshSecret string) (string, *domain.APIToken, error)
}
