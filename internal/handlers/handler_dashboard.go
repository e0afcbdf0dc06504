package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/wayfare-app/wayfare_backend/internal/apperrors"
	"github.com/wayfare-app/wayfare_backend/internal/core/domain"
	portssvc "github.com/wayfare-app/wayfare_backend/internal/core/ports/services"
	"github.com/wayfare-app/wayfare_backend/internal/dto"
	"github.com/wayfare-app/wayfare_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// dashboardHandler handles the dashboard aggregation endpoint.
type dashboardHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newDashboardHandler creates a new dashboardHandler.
func newDashboardHandler(rs portssvc.ReportingSvcFacade) *dashboardHandler {
	return &dashboardHandler{
		reportingService: rs,
	}
}

// registerDashboardRoutes registers the dashboard endpoint with its scope guard.
func registerDashboardRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newDashboardHandler(reportingService)

	rg.GET("/dashboard", middleware.RequireScopes(domain.ScopeReadDashboard), h.getDashboard)
}

// getDashboard godoc
// @Summary Dashboard summary
// @Description Aggregates the caller's routes over a period, with per-month breakdown. Defaults to the last 12 months.
// @Tags dashboard
// @Produce json
// @Param from query string false "Period start (RFC 3339 date)"
// @Param to query string false "Period end (RFC 3339 date)"
// @Success 200 {object} dto.DashboardSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard [get]
func (h *dashboardHandler) getDashboard(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	now := time.Now()
	from := now.AddDate(-1, 0, 0)
	to := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "from must be a YYYY-MM-DD date"})
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "to must be a YYYY-MM-DD date"})
			return
		}
		to = parsed
	}

	summary, err := h.reportingService.DashboardSummary(c.Request.Context(), userID, from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid period"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build dashboard"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardSummaryResponse(summary))
}
