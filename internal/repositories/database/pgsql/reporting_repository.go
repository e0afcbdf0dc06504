package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/wayfare-app/wayfare_backend/internal/core/domain"
	portsrepo "github.com/wayfare-app/wayfare_backend/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	db *pgxpool.Pool
}

func newPgxReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{db: db}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

const dashboardMonthlyQuery = `
	SELECT
		to_char(route_date, 'YYYY-MM') AS month,
		COUNT(*) AS route_count,
		COALESCE(SUM(distance_km), 0) AS distance_km,
		COALESCE(SUM(earnings), 0) AS earnings
	FROM routes
	WHERE user_id = $1
		AND deleted_at IS NULL
		AND route_date >= $2
		AND route_date <= $3
	GROUP BY to_char(route_date, 'YYYY-MM')
	ORDER BY month ASC
`

// GetDashboardSummary aggregates the user's routes between from and to inclusive.
// Totals are derived by summing the monthly buckets so both views always agree.
func (r *PgxReportingRepository) GetDashboardSummary(ctx context.Context, userID string, from, to time.Time) (*domain.DashboardSummary, error) {
	rows, err := r.db.Query(ctx, dashboardMonthlyQuery, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate dashboard for user %s: %w", userID, err)
	}
	defer rows.Close()

	summary := domain.DashboardSummary{
		TotalDistanceKm: decimal.Zero,
		TotalEarnings:   decimal.Zero,
		ByMonth:         []domain.MonthlyEarnings{},
	}
	for rows.Next() {
		var month domain.MonthlyEarnings
		if err := rows.Scan(&month.Month, &month.RouteCount, &month.DistanceKm, &month.Earnings); err != nil {
			return nil, fmt.Errorf("failed to scan dashboard row: %w", err)
		}
		summary.ByMonth = append(summary.ByMonth, month)
		summary.TotalRoutes += month.RouteCount
		summary.TotalDistanceKm = summary.TotalDistanceKm.Add(month.DistanceKm)
		summary.TotalEarnings = summary.TotalEarnings.Add(month.Earnings)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate dashboard rows: %w", err)
	}

	return &summary, nil
}
