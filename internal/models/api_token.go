package models

import (
	"database/sql"
	"time"
)

// APIToken represents a row of the api_tokens registry table. Rows are never
// deleted; revocation flips the revoked column and usage metadata is written
// with a single atomic UPDATE (see the repository).
type APIToken struct {
	TokenID          string         `db:"token_id"`
	UserID           string         `db:"user_id"`
	Description      string         `db:"description"`
	Scopes           []string       `db:"scopes"`
	CreatedAt        time.Time      `db:"created_at"`
	ExpiresAt        time.Time      `db:"expires_at"`
	Revoked          bool           `db:"revoked"`
	UsageCount       int64          `db:"usage_count"`
	LastUsedAt       *time.Time     `db:"last_used_at"`
	LastUsedIP       sql.NullString `db:"last_used_ip"`
	RefreshTokenHash sql.NullString `db:"refresh_token_hash"`
}

// TableName returns the table backing this model.
func (APIToken) TableName() string {
	return "api_tokens"
}

// LegacyAPIKey represents a row of the legacy_api_keys table. Only the SHA-256
// hex digest of the raw key is stored.
type LegacyAPIKey struct {
	KeyHash   string    `db:"key_hash"`
	UserID    string    `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}

// TableName returns the table backing this model.
func (LegacyAPIKey) TableName() string {
	return "legacy_api_keys"
}
