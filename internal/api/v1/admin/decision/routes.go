package decision

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/decisions", ListDecisions)
	router.GET("/decisions/:id", GetDecision)
	router.GET("/responses", ListResponses)
	router.GET("/responses/export", ExportResponses)
}
