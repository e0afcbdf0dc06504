package dto

import (
	"time"

	"github.com/wayfare-app/wayfare_backend/internal/core/domain"
)

// CreateLocationRequest is the request body for saving a location.
type CreateLocationRequest struct {
	Name      string   `json:"name" binding:"required,min=1,max=100"`
	Address   string   `json:"address,omitempty" binding:"omitempty,max=300"`
	Latitude  *float64 `json:"latitude,omitempty" binding:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude,omitempty" binding:"omitempty,gte=-180,lte=180"`
}

// UpdateLocationRequest is the request body for updating a location.
type UpdateLocationRequest struct {
	Name      *string  `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Address   *string  `json:"address,omitempty" binding:"omitempty,max=300"`
	Latitude  *float64 `json:"latitude,omitempty" binding:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude,omitempty" binding:"omitempty,gte=-180,lte=180"`
}

// LocationResponse is the public representation of a location.
type LocationResponse struct {
	LocationID string   `json:"locationID"`
	Name       string   `json:"name"`
	Address    string   `json:"address,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToLocationResponse converts a domain Location to a LocationResponse.
func ToLocationResponse(l *domain.Location) LocationResponse {
	return LocationResponse{
		LocationID: l.LocationID,
		Name:       l.Name,
		Address:    l.Address,
		Latitude:   l.Latitude,
		Longitude:  l.Longitude,
		CreatedAt:  l.CreatedAt,
	}
}

// ToLocationResponseList converts a slice of domain Locations.
func ToLocationResponseList(locations []domain.Location) []LocationResponse {
	out := make([]LocationResponse, len(locations))
	for i := range locations {
		out[i] = ToLocationResponse(&locations[i])
	}
	return out
}
