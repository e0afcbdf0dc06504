package repositories

import (
	"context"
	"time"

	"github.com/wayfare-app/wayfare_backend/internal/core/domain"
)

// APITokenRepository defines persistence operations for the API token registry.
// Records are append-and-mutate only: nothing here deletes a row.
type APITokenRepository interface {
	// CreateToken persists a freshly issued token record.
	CreateToken(ctx context.Context, token domain.APIToken) error

	// FindTokenByID retrieves a token record by its registry key.
	// Returns apperrors.ErrNotFound when no record exists.
	FindTokenByID(ctx context.Context, tokenID string) (*domain.APIToken, error)

	// FindTokensByUserID retrieves all token records owned by a user, newest first.
	FindTokensByUserID(ctx context.Context, userID string) ([]domain.APIToken, error)

	// MarkRevoked sets revoked = true. Idempotent: revoking an already revoked
	// token succeeds without changing anything.
	MarkRevoked(ctx context.Context, tokenID string) error

	// RecordUsage bumps usage_count by one and overwrites last_used_at /
	// last_used_ip in a single atomic UPDATE so concurrent validations of the
	// same token never lose increments.
	RecordUsage(ctx context.Context, tokenID string, usedAt time.Time, clientIP string) error
}

// LegacyKeyRepository defines persistence operations for legacy static API keys.
type LegacyKeyRepository interface {
	// FindByKeyHash retrieves a key record by exact SHA-256 hex digest match.
	// Returns apperrors.ErrNotFound when no record matches.
	FindByKeyHash(ctx context.Context, keyHash string) (*domain.LegacyAPIKey, error)

	// InsertKey persists a legacy key record. Keys are provisioned out of band
	// (seed SQL, ops tooling); there is no issuance endpoint for them.
	InsertKey(ctx context.Context, key domain.LegacyAPIKey) error
}
