package services

import (
	portsrepo "github.com/wayfare-app/wayfare_backend/internal/core/ports/repositories"
	portssvc "github.com/wayfare-app/wayfare_backend/internal/core/ports/services"
	"github.com/wayfare-app/wayfare_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// User service first since the credential validators resolve principals
	// through it.
	container.User = NewUserService(repos.UserRepo)

	container.Route = NewRouteService(repos.RouteRepo, repos.LocationRepo)
	container.Location = NewLocationService(repos.LocationRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	// Credential validators.
	container.TokenService = NewTokenService(cfg, container.User)
	container.APIToken = NewAPITokenService(cfg, repos.APITokenRepo, container.User)
	container.LegacyKey = NewLegacyKeyService(repos.LegacyKeyRepo, container.User)

	// The authenticator runs the validators in their fixed precedence order.
	container.Authenticator = NewAuthenticatorService(container.TokenService, container.APIToken, container.LegacyKey)

	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
