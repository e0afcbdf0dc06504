package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/wayfare-app/wayfare_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	apiTokenRepo := newPgxAPITokenRepository(dbPool)
	legacyKeyRepo := newPgxLegacyKeyRepository(dbPool)
	routeRepo := newPgxRouteRepository(dbPool)
	locationRepo := newPgxLocationRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:      userRepo,
		APITokenRepo:  apiTokenRepo,
		LegacyKeyRepo: legacyKeyRepo,
		RouteRepo:     routeRepo,
		LocationRepo:  locationRepo,
		ReportingRepo: reportingRepo,
	}
}
