package domain

import "github.com/shopspring/decimal"

// MonthlyEarnings is one month's aggregated route income for the dashboard.
type MonthlyEarnings struct {
	Month      string          `json:"month"` // YYYY-MM
	RouteCount int64           `json:"routeCount"`
	DistanceKm decimal.Decimal `json:"distanceKm"`
	Earnings   decimal.Decimal `json:"earnings"`
}

// DashboardSummary aggregates a user's routes over a period.
type DashboardSummary struct {
	TotalRoutes     int64             `json:"totalRoutes"`
	TotalDistanceKm decimal.Decimal   `json:"totalDistanceKm"`
	TotalEarnings   decimal.Decimal   `json:"totalEarnings"`
	ByMonth         []MonthlyEarnings `json:"byMonth"`
}
