package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wayfare-app/wayfare_backend/internal/apperrors"
	"github.com/wayfare-app/wayfare_backend/internal/core/domain"
	portsrepo "github.com/wayfare-app/wayfare_backend/internal/core/ports/repositories"
	"github.com/wayfare-app/wayfare_backend/internal/models"
	"github.com/wayfare-app/wayfare_backend/internal/utils/mapping"
)

type PgxLegacyKeyRepository struct {
	BaseRepository
}

// newPgxLegacyKeyRepository creates a new instance of PgxLegacyKeyRepository
func newPgxLegacyKeyRepository(db *pgxpool.Pool) portsrepo.LegacyKeyRepository {
	return &PgxLegacyKeyRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

const (
	findLegacyKeyByHashQuery = `
		SELECT key_hash, user_id, created_at
		FROM legacy_api_keys
		WHERE key_hash = $1
	`

	insertLegacyKeyQuery = `
		INSERT INTO legacy_api_keys (key_hash, user_id, created_at)
		VALUES ($1, $2, $3)
	`
)

// FindByKeyHash retrieves a key record by exact hash match.
func (r *PgxLegacyKeyRepository) FindByKeyHash(ctx context.Context, keyHash string) (*domain.LegacyAPIKey, error) {
	var m models.LegacyAPIKey
	err := r.Pool.QueryRow(ctx, findLegacyKeyByHashQuery, keyHash).Scan(
		&m.KeyHash,
		&m.UserID,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up legacy api key: %w", err)
	}

	key := mapping.ToDomainLegacyAPIKey(m)
	return &key, nil
}

// InsertKey persists a legacy key record.
func (r *PgxLegacyKeyRepository) InsertKey(ctx context.Context, key domain.LegacyAPIKey) error {
	_, err := r.Pool.Exec(ctx, insertLegacyKeyQuery, key.KeyHash, key.UserID, key.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert legacy api key: %w", err)
	}
	return nil
}
