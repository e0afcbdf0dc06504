package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wayfare-app/wayfare_backend/internal/apperrors"
	"github.com/wayfare-app/wayfare_backend/internal/core/domain"
	portsrepo "github.com/wayfare-app/wayfare_backend/internal/core/ports/repositories"
	"github.com/wayfare-app/wayfare_backend/internal/models"
	"github.com/wayfare-app/wayfare_backend/internal/utils/mapping"
)

type PgxAPITokenRepository struct {
	BaseRepository
}

// newPgxAPITokenRepository creates a new instance of PgxAPITokenRepository
func newPgxAPITokenRepository(db *pgxpool.Pool) portsrepo.APITokenRepository {
	return &PgxAPITokenRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

const (
	apiTokensTable = "api_tokens"

	selectAPITokenFields = `
		token_id, user_id, description, scopes, created_at, expires_at,
		revoked, usage_count, last_used_at, last_used_ip, refresh_token_hash
	`

	insertAPITokenQuery = `
		INSERT INTO ` + apiTokensTable + ` (
			token_id, user_id, description, scopes, created_at, expires_at,
			revoked, usage_count, refresh_token_hash
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	findAPITokenByIDQuery = `
		SELECT ` + selectAPITokenFields + `
		FROM ` + apiTokensTable + `
		WHERE token_id = $1
	`

	findAPITokensByUserIDQuery = `
		SELECT ` + selectAPITokenFields + `
		FROM ` + apiTokensTable + `
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	// Revocation is terminal and idempotent; rows are never deleted.
	markRevokedQuery = `
		UPDATE ` + apiTokensTable + `
		SET revoked = TRUE
		WHERE token_id = $1
	`

	// Single atomic increment-and-set. Concurrent validations of the same
	// token must never lose an increment, so this is not read-modify-write.
	recordUsageQuery = `
		UPDATE ` + apiTokensTable + `
		SET usage_count = usage_count + 1,
			last_used_at = $2,
			last_used_ip = $3
		WHERE token_id = $1
	`
)

// CreateToken persists a freshly issued token record.
func (r *PgxAPITokenRepository) CreateToken(ctx context.Context, token domain.APIToken) error {
	m := mapping.ToModelAPIToken(token)
	_, err := r.Pool.Exec(ctx, insertAPITokenQuery,
		m.TokenID,
		m.UserID,
		m.Description,
		m.Scopes,
		m.CreatedAt,
		m.ExpiresAt,
		m.Revoked,
		m.UsageCount,
		m.RefreshTokenHash,
	)
	if err != nil {
		return fmt.Errorf("failed to insert api token: %w", err)
	}
	return nil
}

// FindTokenByID retrieves a token record by its registry key.
func (r *PgxAPITokenRepository) FindTokenByID(ctx context.Context, tokenID string) (*domain.APIToken, error) {
	row := r.Pool.QueryRow(ctx, findAPITokenByIDQuery, tokenID)
	token, err := scanAPIToken(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find api token %s: %w", tokenID, err)
	}

	domainToken := mapping.ToDomainAPIToken(*token)
	return &domainToken, nil
}

// FindTokensByUserID retrieves all token records owned by a user, newest first.
func (r *PgxAPITokenRepository) FindTokensByUserID(ctx context.Context, userID string) ([]domain.APIToken, error) {
	rows, err := r.Pool.Query(ctx, findAPITokensByUserIDQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list api tokens for user %s: %w", userID, err)
	}
	defer rows.Close()

	var tokens []domain.APIToken
	for rows.Next() {
		token, err := scanAPIToken(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan api token row: %w", err)
		}
		tokens = append(tokens, mapping.ToDomainAPIToken(*token))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate api token rows: %w", err)
	}

	return tokens, nil
}

// MarkRevoked sets revoked = true.
func (r *PgxAPITokenRepository) MarkRevoked(ctx context.Context, tokenID string) error {
	result, err := r.Pool.Exec(ctx, markRevokedQuery, tokenID)
	if err != nil {
		return fmt.Errorf("failed to revoke api token %s: %w", tokenID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// RecordUsage atomically bumps usage_count and overwrites the last-used metadata.
func (r *PgxAPITokenRepository) RecordUsage(ctx context.Context, tokenID string, usedAt time.Time, clientIP string) error {
	result, err := r.Pool.Exec(ctx, recordUsageQuery, tokenID, usedAt, clientIP)
	if err != nil {
		return fmt.Errorf("failed to record usage for api token %s: %w", tokenID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// scanAPIToken scans an API token from a row
func scanAPIToken(row pgx.Row) (*models.APIToken, error) {
	var token models.APIToken
	err := row.Scan(
		&token.TokenID,
		&token.UserID,
		&token.Description,
		&token.Scopes,
		&token.CreatedAt,
		&token.ExpiresAt,
		&token.Revoked,
		&token.UsageCount,
		&token.LastUsedAt,
		&token.LastUsedIP,
		&token.RefreshTokenHash,
	)
	if err != nil {
		return nil, err
	}
	return &token, nil
}
