package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/wayfare-app/wayfare_backend/internal/apperrors"
	portssvc "github.com/wayfare-app/wayfare_backend/internal/core/ports/services"
	"github.com/wayfare-app/wayfare_backend/internal/dto"
	"github.com/wayfare-app/wayfare_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// apiTokenHandler handles HTTP requests for API token operations
type apiTokenHandler struct {
	tokenSvc portssvc.APITokenSvc
}

// newAPITokenHandler creates a new apiTokenHandler
func newAPITokenHandler(tokenSvc portssvc.APITokenSvc) *apiTokenHandler {
	return &apiTokenHandler{
		tokenSvc: tokenSvc,
	}
}

// registerAPITokenRoutes registers the API token routes. Token management is a
// session-only surface: an API token must never be able to mint or revoke
// other tokens, so the whole group requires a non-scoped principal.
func registerAPITokenRoutes(rg *gin.RouterGroup, tokenSvc portssvc.APITokenSvc) {
	h := newAPITokenHandler(tokenSvc)

	tokens := rg.Group("/tokens", requireSessionPrincipal())
	{
		tokens.POST("", h.createToken)
		tokens.GET("", h.listTokens)
		tokens.DELETE("/:id", h.revokeToken)
	}
}

// registerAPITokenRefreshRoute registers the refresh exchange. It is
// deliberately outside the session-only group: the caller authenticates with
// the refresh secret itself, not with a principal.
func registerAPITokenRefreshRoute(rg *gin.Engine, tokenSvc portssvc.APITokenSvc) {
	h := newAPITokenHandler(tokenSvc)
	rg.POST("/api/v1/tokens/refresh", h.refreshToken)
}

// requireSessionPrincipal blocks API token principals from the token
// management endpoints.
func requireSessionPrincipal() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, exists := middleware.GetPrincipalFromContext(c)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
			return
		}
		if principal.IsScoped() {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "Insufficient permissions"})
			return
		}
		c.Next()
	}
}

// createToken godoc
// @Summary Create a new API token
// @Description Issues a scoped API token for the authenticated user. The access token (and optional refresh token) are shown only once.
// @Tags tokens
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAPITokenRequest true "Token details"
// @Success 201 {object} dto.CreateAPITokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tokens [post]
func (h *apiTokenHandler) createToken(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	var req dto.CreateAPITokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	issuance, err := h.tokenSvc.CreateToken(c.Request.Context(), userID, req.Description, req.Scopes, req.ExpiryDays, req.GenerateRefreshToken)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: appErr.Message})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid token request"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create token"})
		return
	}

	record := issuance.Record
	c.JSON(http.StatusCreated, dto.CreateAPITokenResponse{
		AccessToken:  issuance.AccessToken,
		RefreshToken: issuance.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(time.Until(record.ExpiresAt).Seconds()),
		ExpiresAt:    record.ExpiresAt,
		Scopes:       record.Scopes,
		TokenID:      record.TokenID,
		Description:  record.Description,
	})
}

// listTokens godoc
// @Summary List API tokens
// @Description Lists the registry metadata of all the caller's API tokens. Signed tokens are never retrievable.
// @Tags tokens
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.APITokenResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tokens [get]
func (h *apiTokenHandler) listTokens(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	tokens, err := h.tokenSvc.ListTokens(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list tokens"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAPITokenResponseList(tokens))
}

// revokeToken godoc
// @Summary Revoke an API token
// @Description Terminally revokes one of the caller's API tokens. Revocation dominates any remaining JWT validity.
// @Tags tokens
// @Produce json
// @Security BearerAuth
// @Param id path string true "Token ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tokens/{id} [delete]
func (h *apiTokenHandler) revokeToken(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return
	}

	tokenID := c.Param("id")
	if err := h.tokenSvc.RevokeToken(c.Request.Context(), userID, tokenID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Token not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Insufficient permissions"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to revoke token"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// refreshToken godoc
// @Summary Refresh an API token
// @Description Exchanges a refresh secret issued at token creation for a new access JWT on the same token record.
// @Tags tokens
// @Accept json
// @Produce json
// @Param request body dto.RefreshAPITokenRequest true "Refresh details"
// @Success 200 {object} dto.RefreshAPITokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tokens/refresh [post]
func (h *apiTokenHandler) refreshToken(c *gin.Context) {
	var req dto.RefreshAPITokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	accessToken, record, err := h.tokenSvc.RefreshAccessToken(c.Request.Context(), req.TokenID, req.RefreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid refresh token"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to refresh token"})
		return
	}

	c.JSON(http.StatusOK, dto.RefreshAPITokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresAt:   record.ExpiresAt,
	})
}
