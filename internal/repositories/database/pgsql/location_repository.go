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

type PgxLocationRepository struct {
	db *pgxpool.Pool
}

func newPgxLocationRepository(db *pgxpool.Pool) portsrepo.LocationRepositoryFacade {
	return &PgxLocationRepository{db: db}
}

var _ portsrepo.LocationRepositoryFacade = (*PgxLocationRepository)(nil)

const selectLocationFields = `
	location_id, user_id, name, address, latitude, longitude,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at
`

func scanLocation(row pgx.Row) (*models.Location, error) {
	var m models.Location
	err := row.Scan(
		&m.LocationID,
		&m.UserID,
		&m.Name,
		&m.Address,
		&m.Latitude,
		&m.Longitude,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveLocation persists a new location.
func (r *PgxLocationRepository) SaveLocation(ctx context.Context, location domain.Location) error {
	m := mapping.ToModelLocation(location)
	query := `
		INSERT INTO locations (
			location_id, user_id, name, address, latitude, longitude,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		m.LocationID,
		m.UserID,
		m.Name,
		m.Address,
		m.Latitude,
		m.Longitude,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save location: %w", err)
	}
	return nil
}

// FindLocationByID retrieves a location by ID, excluding soft-deleted rows.
func (r *PgxLocationRepository) FindLocationByID(ctx context.Context, locationID string) (*domain.Location, error) {
	query := `
		SELECT ` + selectLocationFields + `
		FROM locations
		WHERE location_id = $1 AND deleted_at IS NULL
	`
	m, err := scanLocation(r.db.QueryRow(ctx, query, locationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find location by ID %s: %w", locationID, err)
	}

	location := mapping.ToDomainLocation(*m)
	return &location, nil
}

// FindLocationsByUserID retrieves all locations owned by the user.
func (r *PgxLocationRepository) FindLocationsByUserID(ctx context.Context, userID string) ([]domain.Location, error) {
	query := `
		SELECT ` + selectLocationFields + `
		FROM locations
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY name ASC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations for user %s: %w", userID, err)
	}
	defer rows.Close()

	var locations []models.Location
	for rows.Next() {
		m, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location row: %w", err)
		}
		locations = append(locations, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate location rows: %w", err)
	}

	return mapping.ToDomainLocationSlice(locations), nil
}

// UpdateLocation updates an existing location.
func (r *PgxLocationRepository) UpdateLocation(ctx context.Context, location domain.Location) error {
	m := mapping.ToModelLocation(location)
	query := `
		UPDATE locations
		SET name = $2, address = $3, latitude = $4, longitude = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE location_id = $1 AND deleted_at IS NULL
	`
	result, err := r.db.Exec(ctx, query,
		m.LocationID,
		m.Name,
		m.Address,
		m.Latitude,
		m.Longitude,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update location %s: %w", location.LocationID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkLocationDeleted soft deletes a location.
func (r *PgxLocationRepository) MarkLocationDeleted(ctx context.Context, locationID string, deletedAt time.Time, deletedBy string) error {
	query := `
		UPDATE locations
		SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE location_id = $1 AND deleted_at IS NULL
	`
	result, err := r.db.Exec(ctx, query, locationID, deletedAt, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to mark location %s deleted: %w", locationID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
