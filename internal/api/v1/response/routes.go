package response

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	responses := router.Group("/responses")
	responses.GET("", ListResponses)
	responses.GET("/export", ExportResponses)
}
