package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wayfare-app/wayfare_backend/internal/core/domain"
)

// CreateRouteRequest is the request body for recording a route.
type CreateRouteRequest struct {
	Name            string          `json:"name" binding:"required,min=1,max=150"`
	StartLocationID string          `json:"startLocationID" binding:"required,uuid"`
	EndLocationID   string          `json:"endLocationID" binding:"required,uuid"`
	DistanceKm      decimal.Decimal `json:"distanceKm" binding:"required"`
	Earnings        decimal.Decimal `json:"earnings" binding:"required"`
	CurrencyCode    string          `json:"currencyCode" binding:"required,len=3"`
	RouteDate       time.Time       `json:"routeDate" binding:"required"`
	Notes           string          `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// UpdateRouteRequest is the request body for updating a route. Nil fields are
// left unchanged.
type UpdateRouteRequest struct {
	Name       *string          `json:"name,omitempty" binding:"omitempty,min=1,max=150"`
	DistanceKm *decimal.Decimal `json:"distanceKm,omitempty"`
	Earnings   *decimal.Decimal `json:"earnings,omitempty"`
	RouteDate  *time.Time       `json:"routeDate,omitempty"`
	Notes      *string          `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// RouteResponse is the public representation of a route.
type RouteResponse struct {
	RouteID         string          `json:"routeID"`
	Name            string          `json:"name"`
	StartLocationID string          `json:"startLocationID"`
	EndLocationID   string          `json:"endLocationID"`
	DistanceKm      decimal.Decimal `json:"distanceKm"`
	Earnings        decimal.Decimal `json:"earnings"`
	CurrencyCode    string          `json:"currencyCode"`
	RouteDate       time.Time       `json:"routeDate"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ListRoutesResponse is a page of routes plus the cursor for the next page.
type ListRoutesResponse struct {
	Routes        []RouteResponse `json:"routes"`
	NextPageToken string          `json:"nextPageToken,omitempty"`
}

// ToRouteResponse converts a domain Route to a RouteResponse.
func ToRouteResponse(r *domain.Route) RouteResponse {
	return RouteResponse{
		RouteID:         r.RouteID,
		Name:            r.Name,
		StartLocationID: r.StartLocationID,
		EndLocationID:   r.EndLocationID,
		DistanceKm:      r.DistanceKm,
		Earnings:        r.Earnings,
		CurrencyCode:    r.CurrencyCode,
		RouteDate:       r.RouteDate,
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt,
	}
}

// ToRouteResponseList converts a slice of domain Routes.
func ToRouteResponseList(routes []domain.Route) []RouteResponse {
	out := make([]RouteResponse, len(routes))
	for i := range routes {
		out[i] = ToRouteResponse(&routes[i])
	}
	return out
}
