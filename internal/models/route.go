package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Route represents a row of the routes table.
type Route struct {
	RouteID         string          `db:"route_id"`
	UserID          string          `db:"user_id"`
	Name            string          `db:"name"`
	StartLocationID string          `db:"start_location_id"`
	EndLocationID   string          `db:"end_location_id"`
	DistanceKm      decimal.Decimal `db:"distance_km"`
	Earnings        decimal.Decimal `db:"earnings"`
	CurrencyCode    string          `db:"currency_code"`
	RouteDate       time.Time       `db:"route_date"`
	Notes           string          `db:"notes"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}

// TableName returns the table backing this model.
func (Route) TableName() string {
	return "routes"
}
