package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/wayfare-app/wayfare_backend/internal/core/domain"
)

// userIDKey is the key used to store the authenticated user's ID in the
// request context.
const userIDKey = contextKey("userID")

// principalKey is the key used to store the resolved Principal in the Gin
// context. The principal lives only for the duration of one request.
const principalKey = contextKey("principal")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		userIDCtxVal := c.Request.Context().Value(userIDKey)
		if userIDCtxVal != nil {
			userID, ok := userIDCtxVal.(string)
			return userID, ok
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}

// GetPrincipalFromContext retrieves the resolved Principal from the Gin
// context. A missing principal means the request is anonymous.
func GetPrincipalFromContext(c *gin.Context) (*domain.Principal, bool) {
	val, exists := c.Get(string(principalKey))
	if !exists {
		return nil, false
	}

	principal, ok := val.(*domain.Principal)
	if !ok || principal == nil {
		return nil, false
	}

	return principal, true
}
