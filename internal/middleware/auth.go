package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taskflow-app/taskflow/internal/constants"
	apierrors "github.com/taskflow-app/taskflow/internal/errors"
	"github.com/taskflow-app/taskflow/internal/services"
)

// RequireAuth verifies the bearer token on every protected route and stores
// the caller's user id in the request context. Verification failure stops
// the request before any storage access happens.
func RequireAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			apierrors.Unauthorized(c, "No token, authorization denied")
			c.Abort()
			return
		}

		userID, err := authService.VerifyToken(token)
		if err != nil {
			apierrors.Unauthorized(c, "Token is not valid")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// extractToken accepts either an Authorization bearer header or the legacy
// x-auth-token header.
func extractToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, constants.BearerPrefix) {
		return strings.TrimPrefix(auth, constants.BearerPrefix)
	}
	return c.GetHeader(constants.AuthTokenHeader)
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return "", false
	}

	id, ok := userID.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
