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
)

// locationService implements the LocationSvcFacade interface
type locationService struct {
	BaseService
	locationRepo portsrepo.LocationRepositoryFacade
}

// NewLocationService creates a new instance of locationService
func NewLocationService(locationRepo portsrepo.LocationRepositoryFacade) portssvc.LocationSvcFacade {
	return &locationService{
		locationRepo: locationRepo,
	}
}

var _ portssvc.LocationSvcFacade = (*locationService)(nil)

// CreateLocation creates a new location owned by userID.
func (s *locationService) CreateLocation(ctx context.Context, req dto.CreateLocationRequest, userID string) (*domain.Location, error) {
	now := time.Now()
	location := domain.Location{
		LocationID: uuid.NewString(),
		UserID:     userID,
		Name:       req.Name,
		Address:    req.Address,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.locationRepo.SaveLocation(ctx, location); err != nil {
		s.LogError(ctx, err, "Failed to save location", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save location: %w", err)
	}

	s.LogInfo(ctx, "Location created", slog.String("location_id", location.LocationID), slog.String("user_id", userID))
	return &location, nil
}

// GetLocationByID retrieves a location, enforcing ownership. A location owned
// by another user reads the same as a missing one.
func (s *locationService) GetLocationByID(ctx context.Context, locationID string, userID string) (*domain.Location, error) {
	location, err := s.locationRepo.FindLocationByID(ctx, locationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		s.LogError(ctx, err, "Failed to find location", slog.String("location_id", locationID))
		return nil, fmt.Errorf("failed to find location: %w", err)
	}
	if location.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return location, nil
}

// ListLocations lists all the user's locations.
func (s *locationService) ListLocations(ctx context.Context, userID string) ([]domain.Location, error) {
	locations, err := s.locationRepo.FindLocationsByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list locations", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return locations, nil
}

// UpdateLocation updates a location, enforcing ownership.
func (s *locationService) UpdateLocation(ctx context.Context, locationID string, req dto.UpdateLocationRequest, userID string) (*domain.Location, error) {
	location, err := s.GetLocationByID(ctx, locationID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		location.Name = *req.Name
	}
	if req.Address != nil {
		location.Address = *req.Address
	}
	if req.Latitude != nil {
		location.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		location.Longitude = req.Longitude
	}
	location.LastUpdatedAt = time.Now()
	location.LastUpdatedBy = userID

	if err := s.locationRepo.UpdateLocation(ctx, *location); err != nil {
		s.LogError(ctx, err, "Failed to update location", slog.String("location_id", locationID))
		return nil, fmt.Errorf("failed to update location: %w", err)
	}

	return location, nil
}

// DeleteLocation soft deletes a location, enforcing ownership.
func (s *locationService) DeleteLocation(ctx context.Context, locationID string, userID string) error {
	if _, err := s.GetLocationByID(ctx, locationID, userID); err != nil {
		return err
	}

	if err := s.locationRepo.MarkLocationDeleted(ctx, locationID, time.Now(), userID); err != nil {
		s.LogError(ctx, err, "Failed to delete location", slog.String("location_id", locationID))
		return fmt.Errorf("failed to delete location: %w", err)
	}

	s.LogInfo(ctx, "Location deleted", slog.String("location_id", locationID), slog.String("user_id", userID))
	return nil
}
