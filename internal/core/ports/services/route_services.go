package services

import (
	"context"
	"time"

	"github.com/wayfare-app/wayfare_backend/internal/core/domain"
	"github.com/wayfare-app/wayfare_backend/internal/dto"
)

// RouteSvcFacade defines operations on routes.
type RouteSvcFacade interface {
	// CreateRoute creates a new route owned by userID.
	CreateRoute(ctx context.Context, req dto.CreateRouteRequest, userID string) (*domain.Route, error)

	// GetRouteByID retrieves a route, enforcing ownership.
	GetRouteByID(ctx context.Context, routeID string, userID string) (*domain.Route, error)

	// ListRoutes lists the user's routes with cursor pagination. nextToken is
	// empty when the listing is exhausted.
	ListRoutes(ctx context.Context, userID string, limit int, pageToken string) ([]domain.Route, string, error)

	// UpdateRoute updates a route, enforcing ownership.
	UpdateRoute(ctx context.Context, routeID string, req dto.UpdateRouteRequest, userID string) (*domain.Route, error)

	// DeleteRoute soft deletes a route, enforcing ownership.
	DeleteRoute(ctx context.Context, routeID string, userID string) error
}

// LocationSvcFacade defines operations on locations.
type LocationSvcFacade interface {
	// CreateLocation creates a new location owned by userID.
	CreateLocation(ctx context.Context, req dto.CreateLocationRequest, userID string) (*domain.Location, error)

	// GetLocationByID retrieves a location, enforcing ownership.
	GetLocationByID(ctx context.Context, locationID string, userID string) (*domain.Location, error)

	// ListLocations lists all the user's locations.
	ListLocations(ctx context.Context, userID string) ([]domain.Location, error)

	// UpdateLocation updates a location, enforcing ownership.
	UpdateLocation(ctx context.Context, locationID string, req dto.UpdateLocationRequest, userID string) (*domain.Location, error)

	// DeleteLocation soft deletes a location, enforcing ownership.
	DeleteLocation(ctx context.Context, locationID string, userID string) error
}

// ReportingSvcFacade defines dashboard aggregation operations.
type ReportingSvcFacade interface {
	// DashboardSummary aggregates the user's routes over [from, to].
	DashboardSummary(ctx context.Context, userID string, from, to time.Time) (*domain.DashboardSummary, error)
}
