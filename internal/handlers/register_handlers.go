package handlers

import (
	"github.com/wayfare-app/wayfare_backend/cmd/docs"
	portssvc "github.com/wayfare-app/wayfare_backend/internal/core/ports/services"
	"github.com/wayfare-app/wayfare_backend/internal/middleware"
	"github.com/wayfare-app/wayfare_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	// Register public authentication routes
	registerAuthRoutes(r, cfg, services)

	// The API token refresh exchange authenticates with the refresh secret
	// itself, so it sits outside the guarded v1 group.
	registerAPITokenRefreshRoute(r, services.APIToken)

	// Setup API v1 routes behind the credential pipeline
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// The Authentication middleware resolves credentials but never rejects;
	// RequireAuth is what makes the group members private.
	v1 := r.Group("/api/v1",
		middleware.Authentication(services.Authenticator, cfg.AuthSkipPathPrefixes),
		middleware.RequireAuth(),
	)

	registerUserRoutes(v1, services.User)
	registerRouteRoutes(v1, services.Route)
	registerLocationRoutes(v1, services.Location)
	registerDashboardRoutes(v1, services.Reporting)
	registerAPITokenRoutes(v1, services.APIToken)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
