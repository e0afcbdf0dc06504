package mapping

import (
	"database/sql"

	"github.com/wayfare-app/wayfare_backend/internal/core/domain"
	"github.com/wayfare-app/wayfare_backend/internal/models"
)

// ToModelAPIToken converts a domain APIToken to a model APIToken.
func ToModelAPIToken(d domain.APIToken) models.APIToken {
	m := models.APIToken{
		TokenID:     d.TokenID,
		UserID:      d.UserID,
		Description: d.Description,
		Scopes:      d.Scopes,
		CreatedAt:   d.CreatedAt,
		ExpiresAt:   d.ExpiresAt,
		Revoked:     d.Revoked,
		UsageCount:  d.UsageCount,
		LastUsedAt:  d.LastUsedAt,
	}
	if d.LastUsedIP != nil {
		m.LastUsedIP = sql.NullString{String: *d.LastUsedIP, Valid: true}
	}
	if d.RefreshTokenHash != nil {
		m.RefreshTokenHash = sql.NullString{String: *d.RefreshTokenHash, Valid: true}
	}
	return m
}

// ToDomainAPIToken converts a model APIToken to a domain APIToken.
func ToDomainAPIToken(m models.APIToken) domain.APIToken {
	d := domain.APIToken{
		TokenID:     m.TokenID,
		UserID:      m.UserID,
		Description: m.Description,
		Scopes:      m.Scopes,
		CreatedAt:   m.CreatedAt,
		ExpiresAt:   m.ExpiresAt,
		Revoked:     m.Revoked,
		UsageCount:  m.UsageCount,
		LastUsedAt:  m.LastUsedAt,
	}
	if m.LastUsedIP.Valid {
		ip := m.LastUsedIP.String
		d.LastUsedIP = &ip
	}
	if m.RefreshTokenHash.Valid {
		h := m.RefreshTokenHash.String
		d.RefreshTokenHash = &h
	}
	return d
}

// ToDomainAPITokenSlice converts a slice of model APITokens to domain APITokens.
func ToDomainAPITokenSlice(ms []models.APIToken) []domain.APIToken {
	ds := make([]domain.APIToken, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAPIToken(m)
	}
	return ds
}

// ToDomainLegacyAPIKey converts a model LegacyAPIKey to its domain form.
func ToDomainLegacyAPIKey(m models.LegacyAPIKey) domain.LegacyAPIKey {
	return domain.LegacyAPIKey{
		UserID:    m.UserID,
		KeyHash:   m.KeyHash,
		CreatedAt: m.CreatedAt,
	}
}
