package domain

import "time"

// APIToken is the persisted registry record for a scoped API token. The signed
// JWT carries the same TokenID; validation cross-checks this record so that
// revocation and storage-side expiry dominate whatever the JWT claims say.
// Records are never physically deleted (audit trail); Revoked only ever moves
// false -> true and UsageCount only ever grows.
type APIToken struct {
	TokenID     string     `json:"tokenID"` // Registry lookup key, embedded in the JWT
	UserID      string     `json:"userID"`
	Description string     `json:"description"`
	Scopes      []string   `json:"scopes"` // Fixed at issuance, never grows
	CreatedAt   time.Time  `json:"createdAt"`
	ExpiresAt   time.Time  `json:"expiresAt"`
	Revoked     bool       `json:"revoked"`
	UsageCount  int64      `json:"usageCount"`
	LastUsedAt  *time.Time `json:"lastUsedAt,omitempty"`
	LastUsedIP  *string    `json:"lastUsedIP,omitempty"`

	// RefreshTokenHash is the SHA-256 hex hash of the optional opaque refresh
	// secret. Never exposed; the raw secret is returned exactly once at issuance.
	RefreshTokenHash *string `json:"-"`
}

// IsExpired checks the registry-side expiry, independent of the JWT's own exp claim.
func (t *APIToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// LegacyAPIKey is the persisted record for a legacy static API key. Only the
// lowercase hex SHA-256 of the raw key is stored; the raw key is never persisted
// or logged.
type LegacyAPIKey struct {
	UserID    string    `json:"userID"`
	KeyHash   string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

const (
	// MaxAPITokenExpiryDays caps how far out an API token registry record may expire.
	MaxAPITokenExpiryDays = 730
	// DefaultAPITokenExpiryDays applies when an issuance request omits expiryDays.
	DefaultAPITokenExpiryDays = 365
)
