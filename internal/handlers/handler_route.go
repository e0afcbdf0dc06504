package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/wayfare-app/wayfare_backend/internal/apperrors"
	"github.com/wayfare-app/wayfare_backend/internal/core/domain"
	portssvc "github.com/wayfare-app/wayfare_backend/internal/core/ports/services"
	"github.com/wayfare-app/wayfare_backend/internal/dto"
	"github.com/wayfare-app/wayfare_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// routeHandler handles HTTP requests related to routes.
type routeHandler struct {
	routeService portssvc.RouteSvcFacade
}

// newRouteHandler creates a new routeHandler.
func newRouteHandler(rs portssvc.RouteSvcFacade) *routeHandler {
	return &routeHandler{
		routeService: rs,
	}
}

// registerRouteRoutes registers all route endpoints with their scope guards.
// Each endpoint declares the scopes that may reach it; a request passes when
// its principal holds at least one of them.
func registerRouteRoutes(rg *gin.RouterGroup, routeService portssvc.RouteSvcFacade) {
	h := newRouteHandler(routeService)

	routes := rg.Group("/routes")
	{
		routes.POST("", middleware.RequireScopes(domain.ScopeWriteRoutes), h.createRoute)
		routes.GET("", middleware.RequireScopes(domain.ScopeReadRoutes), h.listRoutes)
		routes.GET("/:id", middleware.RequireScopes(domain.ScopeReadRoutes), h.getRoute)
		routes.PUT("/:id", middleware.RequireScopes(domain.ScopeWriteRoutes), h.updateRoute)
		routes.DELETE("/:id", middleware.RequireScopes(domain.ScopeDeleteRoutes), h.deleteRoute)
	}
}

// respondRouteError maps service errors to HTTP responses.
func respondRouteError(c *gin.Context, err error, action string) {
	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Route not found"})
	case errors.As(err, &appErr) && errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: appErr.Message})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request"})
	default:
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Route operation failed", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to " + action})
	}
}

// createRoute godoc
// @Summary Record a route
// @Description Saves a new route with its distance and earnings.
// @Tags routes
// @Accept json
// @Produce json
// @Param route body dto.CreateRouteRequest true "Route details"
// @Success 201 {object} dto.RouteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /routes [post]
func (h *routeHandler) createRoute(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	route, err := h.routeService.CreateRoute(c.Request.Context(), req, userID)
	if err != nil {
		respondRouteError(c, err, "create route")
		return
	}

	c.JSON(http.StatusCreated, dto.ToRouteResponse(route))
}

// listRoutes godoc
// @Summary List routes
// @Description Lists the caller's routes newest first with cursor pagination.
// @Tags routes
// @Produce json
// @Param limit query int false "Max results" default(20)
// @Param pageToken query string false "Cursor from a previous page"
// @Success 200 {object} dto.ListRoutesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /routes [get]
func (h *routeHandler) listRoutes(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	pageToken := c.Query("pageToken")

	routes, nextToken, err := h.routeService.ListRoutes(c.Request.Context(), userID, limit, pageToken)
	if err != nil {
		respondRouteError(c, err, "list routes")
		return
	}

	c.JSON(http.StatusOK, dto.ListRoutesResponse{
		Routes:        dto.ToRouteResponseList(routes),
		NextPageToken: nextToken,
	})
}

// getRoute godoc
// @Summary Get a route
// @Description Retrieves one of the caller's routes by ID.
// @Tags routes
// @Produce json
// @Param id path string true "Route ID"
// @Success 200 {object} dto.RouteResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /routes/{id} [get]
func (h *routeHandler) getRoute(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	route, err := h.routeService.GetRouteByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondRouteError(c, err, "get route")
		return
	}

	c.JSON(http.StatusOK, dto.ToRouteResponse(route))
}

// updateRoute godoc
// @Summary Update a route
// @Description Updates one of the caller's routes.
// @Tags routes
// @Accept json
// @Produce json
// @Param id path string true "Route ID"
// @Param route body dto.UpdateRouteRequest true "Fields to update"
// @Success 200 {object} dto.RouteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /routes/{id} [put]
func (h *routeHandler) updateRoute(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.UpdateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	route, err := h.routeService.UpdateRoute(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondRouteError(c, err, "update route")
		return
	}

	c.JSON(http.StatusOK, dto.ToRouteResponse(route))
}

// deleteRoute godoc
// @Summary Delete a route
// @Description Soft deletes one of the caller's routes.
// @Tags routes
// @Produce json
// @Param id path string true "Route ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /routes/{id} [delete]
func (h *routeHandler) deleteRoute(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	if err := h.routeService.DeleteRoute(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondRouteError(c, err, "delete route")
		return
	}

	c.Status(http.StatusNoContent)
}
