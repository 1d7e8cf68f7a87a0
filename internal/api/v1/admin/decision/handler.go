package decision

import (
	decisionapi "decide-backend/internal/api/v1/decision"
	"decide-backend/internal/services"
	"decide-backend/internal/utils"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type AdminDecisionItem struct {
	decisionapi.DecisionItem
	UserID uint `json:"user_id"`
}

type DecisionListResponse struct {
	Decisions []AdminDecisionItem `json:"decisions"`
	Total     int64               `json:"total"`
	Page      int                 `json:"page"`
	Limit     int                 `json:"limit"`
}

type DecisionDetailResponse struct {
	decisionapi.DecisionDetailResponse
	UserID uint `json:"user_id"`
}

// ListDecisions godoc
// @Summary List all decisions
// @Description Get a paginated list of decisions across users, newest first. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param quadrant query string false "Q1..Q4, or none for unclassified"
// @Param user_id query int false "Filter by owner"
// @Param search query string false "Search title, description or username"
// @Success 200 {object} utils.Response{data=DecisionListResponse}
// @Failure 400 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Router /admin/decisions [get]
func ListDecisions(c *gin.Context) {
	page, err := utils.ParsePage(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	limit, err := utils.ParseLimit(c, 20, 100)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	filter := services.DecisionFilter{
		Quadrant: c.Query("quadrant"),
		Search:   c.Query("search"),
		Page:     page,
		Limit:    limit,
	}
	if userIDStr, exists := c.GetQuery("user_id"); exists {
		userID, err := strconv.ParseUint(userIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid user_id"))
			return
		}
		filter.UserID = uint(userID)
	}

	decisions, total, err := services.FindDecisions(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	items := make([]AdminDecisionItem, 0, len(decisions))
	for _, d := range decisions {
		items = append(items, AdminDecisionItem{DecisionItem: decisionapi.NewDecisionItem(d), UserID: d.UserID})
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Decisions retrieved successfully", DecisionListResponse{
		Decisions: items,
		Total:     total,
		Page:      page,
		Limit:     limit,
	}))
}

// GetDecision godoc
// @Summary Get any decision
// @Description Decision detail with its answers. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path int true "Decision ID"
// @Success 200 {object} utils.Response{data=DecisionDetailResponse}
// @Failure 404 {object} utils.Response
// @Router /admin/decisions/{id} [get]
func GetDecision(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid decision ID"))
		return
	}

	detail, err := services.GetDecisionByID(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Decision retrieved successfully", DecisionDetailResponse{
		DecisionDetailResponse: decisionapi.NewDecisionDetailResponse(detail),
		UserID:                 detail.Decision.UserID,
	}))
}

type ResponseListResponse struct {
	Responses []services.ResponseView `json:"responses"`
	Total     int64                   `json:"total"`
	Page      int                     `json:"page"`
	Limit     int                     `json:"limit"`
}

func responseFilter(c *gin.Context) (services.ResponseFilter, bool) {
	var filter services.ResponseFilter
	if answerStr, exists := c.GetQuery("answer"); exists {
		answer, err := strconv.ParseBool(answerStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid answer"))
			return filter, false
		}
		filter.Answer = &answer
	}
	if promptIDStr, exists := c.GetQuery("prompt_id"); exists {
		promptID, err := strconv.ParseUint(promptIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid prompt_id"))
			return filter, false
		}
		filter.PromptID = uint(promptID)
	}
	filter.Search = c.Query("search")
	return filter, true
}

// ListResponses godoc
// @Summary List all answers
// @Description Get a paginated list of answers across users, newest first. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param answer query bool false "Filter by answer"
// @Param prompt_id query int false "Filter by prompt"
// @Param search query string false "Search decision title or prompt slug"
// @Success 200 {object} utils.Response{data=ResponseListResponse}
// @Failure 400 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Router /admin/responses [get]
func ListResponses(c *gin.Context) {
	page, err := utils.ParsePage(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	limit, err := utils.ParseLimit(c, 20, 100)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	filter, ok := responseFilter(c)
	if !ok {
		return
	}
	filter.Page = page
	filter.Limit = limit

	responses, total, err := services.FindResponses(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Responses retrieved successfully", ResponseListResponse{
		Responses: responses,
		Total:     total,
		Page:      page,
		Limit:     limit,
	}))
}

// ExportResponses godoc
// @Summary Export all answers
// @Description Export answers across users to CSV, with the same filters as the listing. Admin only.
// @Tags admin
// @Produce text/csv
// @Security Bearer
// @Param answer query bool false "Filter by answer"
// @Param prompt_id query int false "Filter by prompt"
// @Param search query string false "Search decision title or prompt slug"
// @Success 200 {string} string "CSV content"
// @Failure 400 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/responses/export [get]
func ExportResponses(c *gin.Context) {
	filter, ok := responseFilter(c)
	if !ok {
		return
	}
	filter.Page = 1
	filter.Limit = 10000 // Hard limit for safety

	responses, _, err := services.FindResponses(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	csvContent, err := services.GenerateResponseCSV(responses)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to generate CSV"))
		return
	}

	filename := "responses_" + time.Now().Format("20060102150405") + ".csv"
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", csvContent)
}
