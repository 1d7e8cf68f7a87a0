package auth

import (
	"decide-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the public sign-up and sign-in endpoints. Logout
// authenticates on its own since it sits outside the protected group.
func RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", Register)
		auth.POST("/login", Login)
		auth.POST("/logout", middleware.AuthMiddleware(), Logout)
	}
}
