package repositories

import (
	"context"
	"time"

	"github.com/wayfare-app/wayfare_backend/internal/core/domain"
)

// RouteRepositoryFacade defines persistence operations for routes.
type RouteRepositoryFacade interface {
	// SaveRoute persists a new route.
	SaveRoute(ctx context.Context, route domain.Route) error

	// FindRouteByID retrieves a route by ID.
	FindRouteByID(ctx context.Context, routeID string) (*domain.Route, error)

	// FindRoutesByUserID retrieves up to limit routes for the user ordered by
	// route_date desc then created_at desc. A non-nil cursor (route date +
	// created at) resumes after that position.
	FindRoutesByUserID(ctx context.Context, userID string, limit int, afterDate *time.Time, afterCreated *time.Time) ([]domain.Route, error)

	// UpdateRoute updates an existing route.
	UpdateRoute(ctx context.Context, route domain.Route) error

	// MarkRouteDeleted soft deletes a route.
	MarkRouteDeleted(ctx context.Context, routeID string, deletedAt time.Time, deletedBy string) error
}

// LocationRepositoryFacade defines persistence operations for locations.
type LocationRepositoryFacade interface {
	// SaveLocation persists a new location.
	SaveLocation(ctx context.Context, location domain.Location) error

	// FindLocationByID retrieves a location by ID.
	FindLocationByID(ctx context.Context, locationID string) (*domain.Location, error)

	// FindLocationsByUserID retrieves all locations owned by the user.
	FindLocationsByUserID(ctx context.Context, userID string) ([]domain.Location, error)

	// UpdateLocation updates an existing location.
	UpdateLocation(ctx context.Context, location domain.Location) error

	// MarkLocationDeleted soft deletes a location.
	MarkLocationDeleted(ctx context.Context, locationID string, deletedAt time.Time, deletedBy string) error
}

// ReportingRepository defines read-only aggregation queries for the dashboard.
type ReportingRepository interface {
	// GetDashboardSummary aggregates the user's routes between from and to (inclusive).
	GetDashboardSummary(ctx context.Context, userID string, from, to time.Time) (*domain.DashboardSummary, error)
}
