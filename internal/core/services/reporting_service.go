package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wayfare-app/wayfare_backend/internal/apperrors"
	"github.com/wayfare-app/wayfare_backend/internal/core/domain"
	portsrepo "github.com/wayfare-app/wayfare_backend/internal/core/ports/repositories"
	portssvc "github.com/wayfare-app/wayfare_backend/internal/core/ports/services"
)

// reportingService implements the ReportingSvcFacade interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new instance of reportingService
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// DashboardSummary aggregates the user's routes over [from, to].
func (s *reportingService) DashboardSummary(ctx context.Context, userID string, from, to time.Time) (*domain.DashboardSummary, error) {
	if to.Before(from) {
		return nil, apperrors.NewAppError(400, "to must not be before from", apperrors.ErrValidation)
	}

	summary, err := s.reportingRepo.GetDashboardSummary(ctx, userID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate dashboard", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to aggregate dashboard: %w", err)
	}

	return summary, nil
}
