package mapping

import (
	"github.com/wayfare-app/wayfare_backend/internal/core/domain"
	"github.com/wayfare-app/wayfare_backend/internal/models"
)

// ToModelLocation converts a domain Location to a model Location.
func ToModelLocation(d domain.Location) models.Location {
	return models.Location{
		LocationID: d.LocationID,
		UserID:     d.UserID,
		Name:       d.Name,
		Address:    d.Address,
		Latitude:   d.Latitude,
		Longitude:  d.Longitude,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
		DeletedAt: d.DeletedAt,
	}
}

// ToDomainLocation converts a model Location to a domain Location.
func ToDomainLocation(m models.Location) domain.Location {
	return domain.Location{
		LocationID: m.LocationID,
		UserID:     m.UserID,
		Name:       m.Name,
		Address:    m.Address,
		Latitude:   m.Latitude,
		Longitude:  m.Longitude,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
		DeletedAt: m.DeletedAt,
	}
}

// ToDomainLocationSlice converts a slice of model Locations to domain Locations.
func ToDomainLocationSlice(ms []models.Location) []domain.Location {
	ds := make([]domain.Location, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLocation(m)
	}
	return ds
}
