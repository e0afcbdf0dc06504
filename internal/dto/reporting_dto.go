package dto

import (
	"github.com/shopspring/decimal"
	"github.com/wayfare-app/wayfare_backend/internal/core/domain"
)

// MonthlyEarningsResponse is one dashboard month row.
type MonthlyEarningsResponse struct {
	Month      string          `json:"month"`
	RouteCount int64           `json:"routeCount"`
	DistanceKm decimal.Decimal `json:"distanceKm"`
	Earnings   decimal.Decimal `json:"earnings"`
}

// DashboardSummaryResponse is the dashboard aggregate payload.
type DashboardSummaryResponse struct {
	TotalRoutes     int64                     `json:"totalRoutes"`
	TotalDistanceKm decimal.Decimal           `json:"totalDistanceKm"`
	TotalEarnings   decimal.Decimal           `json:"totalEarnings"`
	ByMonth         []MonthlyEarningsResponse `json:"byMonth"`
}

// ToDashboardSummaryResponse converts the domain aggregate to its response form.
func ToDashboardSummaryResponse(s *domain.DashboardSummary) DashboardSummaryResponse {
	byMonth := make([]MonthlyEarningsResponse, len(s.ByMonth))
	for i, m := range s.ByMonth {
		byMonth[i] = MonthlyEarningsResponse{
			Month:      m.Month,
			RouteCount: m.RouteCount,
			DistanceKm: m.DistanceKm,
			Earnings:   m.Earnings,
		}
	}
	return DashboardSummaryResponse{
		TotalRoutes:     s.TotalRoutes,
		TotalDistanceKm: s.TotalDistanceKm,
		TotalEarnings:   s.TotalEarnings,
		ByMonth:         byMonth,
	}
}
