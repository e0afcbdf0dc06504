package mapping

import (
	"github.com/wayfare-app/wayfare_backend/internal/core/domain"
	"github.com/wayfare-app/wayfare_backend/internal/models"
)

// ToModelRoute converts a domain Route to a model Route.
func ToModelRoute(d domain.Route) models.Route {
	return models.Route{
		RouteID:         d.RouteID,
		UserID:          d.UserID,
		Name:            d.Name,
		StartLocationID: d.StartLocationID,
		EndLocationID:   d.EndLocationID,
		DistanceKm:      d.DistanceKm,
		Earnings:        d.Earnings,
		CurrencyCode:    d.CurrencyCode,
		RouteDate:       d.RouteDate,
		Notes:           d.Notes,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
		DeletedAt: d.DeletedAt,
	}
}

// ToDomainRoute converts a model Route to a domain Route.
func ToDomainRoute(m models.Route) domain.Route {
	return domain.Route{
		RouteID:         m.RouteID,
		UserID:          m.UserID,
		Name:            m.Name,
		StartLocationID: m.StartLocationID,
		EndLocationID:   m.EndLocationID,
		DistanceKm:      m.DistanceKm,
		Earnings:        m.Earnings,
		CurrencyCode:    m.CurrencyCode,
		RouteDate:       m.RouteDate,
		Notes:           m.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
		DeletedAt: m.DeletedAt,
	}
}

// ToDomainRouteSlice converts a slice of model Routes to domain Routes.
func ToDomainRouteSlice(ms []models.Route) []domain.Route {
	ds := make([]domain.Route, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRoute(m)
	}
	return ds
}
