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

type PgxRouteRepository struct {
	db *pgxpool.Pool
}

func newPgxRouteRepository(db *pgxpool.Pool) portsrepo.RouteRepositoryFacade {
	return &PgxRouteRepository{db: db}
}

var _ portsrepo.RouteRepositoryFacade = (*PgxRouteRepository)(nil)

const selectRouteFields = `
	route_id, user_id, name, start_location_id, end_location_id,
	distance_km, earnings, currency_code, route_date, notes,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at
`

func scanRoute(row pgx.Row) (*models.Route, error) {
	var m models.Route
	err := row.Scan(
		&m.RouteID,
		&m.UserID,
		&m.Name,
		&m.StartLocationID,
		&m.EndLocationID,
		&m.DistanceKm,
		&m.Earnings,
		&m.CurrencyCode,
		&m.RouteDate,
		&m.Notes,
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

// SaveRoute persists a new route.
func (r *PgxRouteRepository) SaveRoute(ctx context.Context, route domain.Route) error {
	m := mapping.ToModelRoute(route)
	query := `
		INSERT INTO routes (
			route_id, user_id, name, start_location_id, end_location_id,
			distance_km, earnings, currency_code, route_date, notes,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.db.Exec(ctx, query,
		m.RouteID,
		m.UserID,
		m.Name,
		m.StartLocationID,
		m.EndLocationID,
		m.DistanceKm,
		m.Earnings,
		m.CurrencyCode,
		m.RouteDate,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save route: %w", err)
	}
	return nil
}

// FindRouteByID retrieves a route by ID, excluding soft-deleted rows.
func (r *PgxRouteRepository) FindRouteByID(ctx context.Context, routeID string) (*domain.Route, error) {
	query := `
		SELECT ` + selectRouteFields + `
		FROM routes
		WHERE route_id = $1 AND deleted_at IS NULL
	`
	m, err := scanRoute(r.db.QueryRow(ctx, query, routeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find route by ID %s: %w", routeID, err)
	}

	route := mapping.ToDomainRoute(*m)
	return &route, nil
}

// FindRoutesByUserID retrieves up to limit routes for the user, newest route
// date first with created_at as tiebreaker. The cursor, when present, resumes
// strictly after the given (route_date, created_at) position.
func (r *PgxRouteRepository) FindRoutesByUserID(ctx context.Context, userID string, limit int, afterDate *time.Time, afterCreated *time.Time) ([]domain.Route, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + selectRouteFields + `
		FROM routes
		WHERE user_id = $1 AND deleted_at IS NULL
	`
	args := []any{userID}
	if afterDate != nil && afterCreated != nil {
		query += ` AND (route_date, created_at) < ($2, $3)`
		args = append(args, *afterDate, *afterCreated)
	}
	query += fmt.Sprintf(` ORDER BY route_date DESC, created_at DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list routes for user %s: %w", userID, err)
	}
	defer rows.Close()

	var routes []models.Route
	for rows.Next() {
		m, err := scanRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan route row: %w", err)
		}
		routes = append(routes, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate route rows: %w", err)
	}

	return mapping.ToDomainRouteSlice(routes), nil
}

// UpdateRoute updates an existing route.
func (r *PgxRouteRepository) UpdateRoute(ctx context.Context, route domain.Route) error {
	m := mapping.ToModelRoute(route)
	query := `
		UPDATE routes
		SET name = $2, start_location_id = $3, end_location_id = $4,
			distance_km = $5, earnings = $6, currency_code = $7,
			route_date = $8, notes = $9, last_updated_at = $10, last_updated_by = $11
		WHERE route_id = $1 AND deleted_at IS NULL
	`
	result, err := r.db.Exec(ctx, query,
		m.RouteID,
		m.Name,
		m.StartLocationID,
		m.EndLocationID,
		m.DistanceKm,
		m.Earnings,
		m.CurrencyCode,
		m.RouteDate,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update route %s: %w", route.RouteID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkRouteDeleted soft deletes a route.
func (r *PgxRouteRepository) MarkRouteDeleted(ctx context.Context, routeID string, deletedAt time.Time, deletedBy string) error {
	query := `
		UPDATE routes
		SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE route_id = $1 AND deleted_at IS NULL
	`
	result, err := r.db.Exec(ctx, query, routeID, deletedAt, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to mark route %s deleted: %w", routeID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
