package flow

import (
	limits "github.com/gin-contrib/size"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, maxBodyBytes int64) {
	flow := router.Group("/decisions/:id/flow")
	flow.GET("", StartFlow)
	flow.GET("/state", CurrentStep)
	flow.POST("", limits.RequestSizeLimiter(maxBodyBytes), SubmitAnswer)
}
