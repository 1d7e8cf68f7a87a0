package response

import (
	"decide-backend/internal/middleware"
	"decide-backend/internal/services"
	"decide-backend/internal/utils"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ListResponses godoc
// @Summary List answers
// @Description Every answer the caller gave, newest first, 20 per page
// @Tags responses
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Success 200 {object} utils.Response{data=services.ResponsePage}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /responses [get]
func ListResponses(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	page, err := utils.ParsePage(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	result, err := services.ListResponses(c.Request.Context(), u.ID, page)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Responses retrieved successfully", result))
}

// ExportResponses godoc
// @Summary Export answers
// @Description Export the caller's answers to CSV
// @Tags responses
// @Produce text/csv
// @Security Bearer
// @Success 200 {string} string "CSV content"
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /responses/export [get]
func ExportResponses(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	responses, err := services.AllResponses(c.Request.Context(), u.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	csvContent, err := services.GenerateResponseCSV(responses)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to generate CSV"))
		return
	}

	filename := fmt.Sprintf("responses_%s.csv", time.Now().Format("20060102150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv", csvContent)
}
