package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wayfare-app/wayfare_backend/internal/apperrors"
	portssvc "github.com/wayfare-app/wayfare_backend/internal/core/ports/services"
)

// Authentication creates the Gin middleware that drives the credential
// pipeline. It extracts the bearer value, asks the authenticator to resolve it
// and attaches the resulting principal to the request.
//
// A rejected or absent credential does NOT abort the request here: the request
// proceeds anonymously and the route-level guards (RequireAuth, RequireScopes)
// decide whether that is acceptable. Only infrastructure faults abort with 500.
func Authentication(authenticator portssvc.AuthenticatorSvc, skipPathPrefixes []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, prefix := range skipPathPrefixes {
			if strings.HasPrefix(c.Request.URL.Path, prefix) {
				c.Next()
				return
			}
		}

		// An identity established earlier in the chain wins; the credential
		// validators never override it.
		if _, exists := GetPrincipalFromContext(c); exists {
			c.Next()
			return
		}

		bearer := extractBearer(c)
		if bearer == "" {
			c.Next()
			return
		}

		logger := GetLoggerFromCtx(c.Request.Context())

		principal, err := authenticator.AuthenticateCredential(c.Request.Context(), bearer, c.ClientIP())
		if err != nil {
			if errors.Is(err, apperrors.ErrUnauthorized) {
				// Invalid credential: proceed anonymously, do not leak which
				// validator rejected it.
				logger.Warn("Credential rejected", slog.String("path", c.Request.URL.Path))
				c.Next()
				return
			}
			logger.Error("Authentication pipeline failure", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.Set(string(principalKey), principal)
		c.Set(string(userIDKey), principal.UserID)

		// Store the user ID in the standard context and enrich the logger so
		// services see both.
		ctx := context.WithValue(c.Request.Context(), userIDKey, principal.UserID)
		enrichedLogger := logger.With(
			slog.String("user_id", principal.UserID),
			slog.String("auth_method", string(principal.Method)),
		)
		ctx = context.WithValue(ctx, loggerCtxKey, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// extractBearer pulls the credential out of the Authorization header. The
// x-api-key header is honored as a fallback for legacy clients that predate
// the bearer scheme.
func extractBearer(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return strings.TrimSpace(c.GetHeader("x-api-key"))
}
