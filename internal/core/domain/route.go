package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Route represents one recorded trip and the income earned on it.
type Route struct {
	RouteID         string          `json:"routeID"` // Primary key (UUID)
	UserID          string          `json:"userID"`
	Name            string          `json:"name"`
	StartLocationID string          `json:"startLocationID"`
	EndLocationID   string          `json:"endLocationID"`
	DistanceKm      decimal.Decimal `json:"distanceKm"`
	Earnings        decimal.Decimal `json:"earnings"`
	CurrencyCode    string          `json:"currencyCode"`
	RouteDate       time.Time       `json:"routeDate"`
	Notes           string          `json:"notes,omitempty"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
