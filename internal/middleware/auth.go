package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskpilot/taskpilot-api/internal/constants"
	apierrors "github.com/taskpilot/taskpilot-api/internal/errors"
	"github.com/taskpilot/taskpilot-api/internal/services"
)

// RequireAuth verifies the bearer token and stores the caller's user ID in
// the request context.
func RequireAuth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			apierrors.Unauthorized(c, apierrors.ErrCodeNoToken, "No token provided")
			c.Abort()
			return
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			message := "Invalid token"
			if errors.Is(err, services.ErrExpiredToken) {
				message = "Token has expired"
			}
			apierrors.Unauthorized(c, apierrors.ErrCodeInvalidToken, message)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	id, ok := userID.(uint64)
	if !ok {
		return 0, false
	}
	return id, true
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
