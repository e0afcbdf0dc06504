package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAuth aborts with 401 when no principal was attached to the request.
// It sits after Authentication in the chain; routes behind it can rely on
// GetPrincipalFromContext succeeding.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := GetPrincipalFromContext(c); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.Next()
	}
}

// RequireScopes guards a route with scope requirements. The principal passes
// when it holds at least one of the named scopes (OR semantics).
//
// Only API token principals are scope-constrained: sessions, legacy keys and
// built-in identities carry full owner authority and pass every scope check.
// Failures are a uniform 403 that does not reveal which scope was missing.
func RequireScopes(scopes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, exists := GetPrincipalFromContext(c)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		if !principal.IsScoped() {
			c.Next()
			return
		}

		if len(scopes) > 0 && !principal.HasAnyScope(scopes...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		c.Next()
	}
}
