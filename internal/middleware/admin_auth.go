package middleware

import (
	"decide-backend/internal/utils"
	"decide-backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminAuthMiddleware validates that the user has admin privileges. It must
// run after AuthMiddleware. The role is read from the stored user rather than
// the token, so a demotion takes effect immediately.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "authorization header is required"))
			c.Abort()
			return
		}

		if !user.IsAdmin() {
			logger.Log.Warn("Unauthorized admin access attempt",
				zap.Uint("user_id", user.ID),
				zap.String("path", c.Request.URL.Path),
			)
			c.JSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, "Forbidden: Admins only"))
			c.Abort()
			return
		}

		c.Next()
	}
}
