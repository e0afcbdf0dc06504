package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/wayfare-app/wayfare_backend/internal/apperrors"
	"github.com/wayfare-app/wayfare_backend/internal/core/domain"
	portssvc "github.com/wayfare-app/wayfare_backend/internal/core/ports/services"
	"github.com/wayfare-app/wayfare_backend/internal/dto"
	"github.com/wayfare-app/wayfare_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// locationHandler handles HTTP requests related to locations.
type locationHandler struct {
	locationService portssvc.LocationSvcFacade
}

// newLocationHandler creates a new locationHandler.
func newLocationHandler(ls portssvc.LocationSvcFacade) *locationHandler {
	return &locationHandler{
		locationService: ls,
	}
}

// registerLocationRoutes registers all location endpoints with their scope guards.
func registerLocationRoutes(rg *gin.RouterGroup, locationService portssvc.LocationSvcFacade) {
	h := newLocationHandler(locationService)

	locations := rg.Group("/locations")
	{
		locations.POST("", middleware.RequireScopes(domain.ScopeWriteLocations), h.createLocation)
		locations.GET("", middleware.RequireScopes(domain.ScopeReadLocations), h.listLocations)
		locations.GET("/:id", middleware.RequireScopes(domain.ScopeReadLocations), h.getLocation)
		locations.PUT("/:id", middleware.RequireScopes(domain.ScopeWriteLocations), h.updateLocation)
		locations.DELETE("/:id", middleware.RequireScopes(domain.ScopeDeleteLocations), h.deleteLocation)
	}
}

func respondLocationError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Location not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request"})
	default:
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Location operation failed", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to " + action})
	}
}

// createLocation godoc
// @Summary Save a location
// @Description Saves a new named place routes can start or end at.
// @Tags locations
// @Accept json
// @Produce json
// @Param location body dto.CreateLocationRequest true "Location details"
// @Success 201 {object} dto.LocationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /locations [post]
func (h *locationHandler) createLocation(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	location, err := h.locationService.CreateLocation(c.Request.Context(), req, userID)
	if err != nil {
		respondLocationError(c, err, "create location")
		return
	}

	c.JSON(http.StatusCreated, dto.ToLocationResponse(location))
}

// listLocations godoc
// @Summary List locations
// @Description Lists all the caller's saved locations.
// @Tags locations
// @Produce json
// @Success 200 {array} dto.LocationResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /locations [get]
func (h *locationHandler) listLocations(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	locations, err := h.locationService.ListLocations(c.Request.Context(), userID)
	if err != nil {
		respondLocationError(c, err, "list locations")
		return
	}

	c.JSON(http.StatusOK, dto.ToLocationResponseList(locations))
}

// getLocation godoc
// @Summary Get a location
// @Description Retrieves one of the caller's locations by ID.
// @Tags locations
// @Produce json
// @Param id path string true "Location ID"
// @Success 200 {object} dto.LocationResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /locations/{id} [get]
func (h *locationHandler) getLocation(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	location, err := h.locationService.GetLocationByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondLocationError(c, err, "get location")
		return
	}

	c.JSON(http.StatusOK, dto.ToLocationResponse(location))
}

// updateLocation godoc
// @Summary Update a location
// @Description Updates one of the caller's locations.
// @Tags locations
// @Accept json
// @Produce json
// @Param id path string true "Location ID"
// @Param location body dto.UpdateLocationRequest true "Fields to update"
// @Success 200 {object} dto.LocationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /locations/{id} [put]
func (h *locationHandler) updateLocation(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	location, err := h.locationService.UpdateLocation(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondLocationError(c, err, "update location")
		return
	}

	c.JSON(http.StatusOK, dto.ToLocationResponse(location))
}

// deleteLocation godoc
// @Summary Delete a location
// @Description Soft deletes one of the caller's locations.
// @Tags locations
// @Produce json
// @Param id path string true "Location ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /locations/{id} [delete]
func (h *locationHandler) deleteLocation(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	if err := h.locationService.DeleteLocation(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondLocationError(c, err, "delete location")
		return
	}

	c.Status(http.StatusNoContent)
}
