package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/wayfare-app/wayfare_backend/internal/apperrors"
	"github.com/wayfare-app/wayfare_backend/internal/core/domain"
	portsrepo "github.com/wayfare-app/wayfare_backend/internal/core/ports/repositories"
	portssvc "github.com/wayfare-app/wayfare_backend/internal/core/ports/services"
	"github.com/wayfare-app/wayfare_backend/internal/dto"
	"github.com/wayfare-app/wayfare_backend/internal/utils/pagination"
)

// routeService implements the RouteSvcFacade interface
type routeService struct {
	BaseService
	routeRepo    portsrepo.RouteRepositoryFacade
	locationRepo portsrepo.LocationRepositoryFacade
}

// NewRouteService creates a new instance of routeService
func NewRouteService(routeRepo portsrepo.RouteRepositoryFacade, locationRepo portsrepo.LocationRepositoryFacade) portssvc.RouteSvcFacade {
	return &routeService{
		routeRepo:    routeRepo,
		locationRepo: locationRepo,
	}
}

var _ portssvc.RouteSvcFacade = (*routeService)(nil)

// validateOwnedLocation checks that the location exists and belongs to userID.
// A location owned by someone else reads the same as a missing one.
func (s *routeService) validateOwnedLocation(ctx context.Context, locationID, userID string) error {
	location, err := s.locationRepo.FindLocationByID(ctx, locationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewAppError(400, fmt.Sprintf("location %s does not exist", locationID), apperrors.ErrValidation)
		}
		return fmt.Errorf("failed to validate location: %w", err)
	}
	if location.UserID != userID {
		return apperrors.NewAppError(400, fmt.Sprintf("location %s does not exist", locationID), apperrors.ErrValidation)
	}
	return nil
}

// CreateRoute creates a new route owned by userID.
func (s *routeService) CreateRoute(ctx context.Context, req dto.CreateRouteRequest, userID string) (*domain.Route, error) {
	if req.DistanceKm.IsNegative() {
		return nil, apperrors.NewAppError(400, "distanceKm must not be negative", apperrors.ErrValidation)
	}
	if err := s.validateOwnedLocation(ctx, req.StartLocationID, userID); err != nil {
		return nil, err
	}
	if err := s.validateOwnedLocation(ctx, req.EndLocationID, userID); err != nil {
		return nil, err
	}

	now := time.Now()
	route := domain.Route{
		RouteID:         uuid.NewString(),
		UserID:          userID,
		Name:            req.Name,
		StartLocationID: req.StartLocationID,
		EndLocationID:   req.EndLocationID,
		DistanceKm:      req.DistanceKm,
		Earnings:        req.Earnings,
		CurrencyCode:    req.CurrencyCode,
		RouteDate:       req.RouteDate,
		Notes:           req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.routeRepo.SaveRoute(ctx, route); err != nil {
		s.LogError(ctx, err, "Failed to save route", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save route: %w", err)
	}

	s.LogInfo(ctx, "Route created", slog.String("route_id", route.RouteID), slog.String("user_id", userID))
	return &route, nil
}

// GetRouteByID retrieves a route, enforcing ownership. A route owned by
// another user reads the same as a missing one.
func (s *routeService) GetRouteByID(ctx context.Context, routeID string, userID string) (*domain.Route, error) {
	route, err := s.routeRepo.FindRouteByID(ctx, routeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "Failed to find route", slog.String("route_id", routeID))
		return nil, fmt.Errorf("failed to find route: %w", err)
	}
	if route.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return route, nil
}

// ListRoutes lists a user's routes newest first with cursor pagination.
func (s *routeService) ListRoutes(ctx context.Context, userID string, limit int, pageToken string) ([]domain.Route, string, error) {
	if limit <= 0 {
		limit = 20
	}

	var afterDate, afterCreated *time.Time
	if pageToken != "" {
		d, c, err := pagination.DecodeToken(pageToken)
		if err != nil {
			return nil, "", apperrors.NewAppError(400, "invalid page token", apperrors.ErrValidation)
		}
		afterDate, afterCreated = &d, &c
	}

	// Fetch one extra row to learn whether another page exists.
	routes, err := s.routeRepo.FindRoutesByUserID(ctx, userID, limit+1, afterDate, afterCreated)
	if err != nil {
		s.LogError(ctx, err, "Failed to list routes", slog.String("user_id", userID))
		return nil, "", fmt.Errorf("failed to list routes: %w", err)
	}

	nextToken := ""
	if len(routes) > limit {
		routes = routes[:limit]
		last := routes[len(routes)-1]
		nextToken = pagination.EncodeToken(last.RouteDate, last.CreatedAt)
	}

	return routes, nextToken, nil
}

// UpdateRoute updates a route, enforcing ownership.
func (s *routeService) UpdateRoute(ctx context.Context, routeID string, req dto.UpdateRouteRequest, userID string) (*domain.Route, error) {
	route, err := s.GetRouteByID(ctx, routeID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		route.Name = *req.Name
	}
	if req.DistanceKm != nil {
		if req.DistanceKm.IsNegative() {
			return nil, apperrors.NewAppError(400, "distanceKm must not be negative", apperrors.ErrValidation)
		}
		route.DistanceKm = *req.DistanceKm
	}
	if req.Earnings != nil {
		route.Earnings = *req.Earnings
	}
	if req.RouteDate != nil {
		route.RouteDate = *req.RouteDate
	}
	if req.Notes != nil {
		route.Notes = *req.Notes
	}
	route.LastUpdatedAt = time.Now()
	route.LastUpdatedBy = userID

	if err := s.routeRepo.UpdateRoute(ctx, *route); err != nil {
		s.LogError(ctx, err, "Failed to update route", slog.String("route_id", routeID))
		return nil, fmt.Errorf("failed to update route: %w", err)
	}

	return route, nil
}

// DeleteRoute soft deletes a route, enforcing ownership.
func (s *routeService) DeleteRoute(ctx context.Context, routeID string, userID string) error {
	if _, err := s.GetRouteByID(ctx, routeID, userID); err != nil {
		return err
	}

	if err := s.routeRepo.MarkRouteDeleted(ctx, routeID, time.Now(), userID); err != nil {
		s.LogError(ctx, err, "Failed to delete route", slog.String("route_id", routeID))
		return fmt.Errorf("failed to delete route: %w", err)
	}

	s.LogInfo(ctx, "Route deleted", slog.String("route_id", routeID), slog.String("user_id", userID))
	return nil
}
