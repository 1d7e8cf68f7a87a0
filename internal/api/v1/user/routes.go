package user

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the account endpoints of the signed-in user.
func RegisterRoutes(router *gin.RouterGroup) {
	account := router.Group("/auth/user")
	account.GET("", CurrentUser)
	account.PUT("/password", ChangePassword)
}
