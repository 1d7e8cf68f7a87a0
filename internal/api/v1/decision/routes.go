package decision

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	decisions := router.Group("/decisions")
	decisions.POST("", CreateDecision)
	decisions.GET("", ListDecisions)
	decisions.GET("/:id", GetDecision)
}
