package decision

import (
	"decide-backend/internal/middleware"
	"decide-backend/internal/services"
	"decide-backend/internal/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateDecision godoc
// @Summary Create a decision
// @Description Create a decision and begin its classification flow
// @Tags decisions
// @Accept json
// @Produce json
// @Security Bearer
// @Param input body CreateDecisionInput true "Decision"
// @Success 201 {object} utils.Response{data=CreateDecisionResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /decisions [post]
func CreateDecision(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	var input CreateDecisionInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	ctx := c.Request.Context()
	d, err := services.CreateDecision(ctx, u.ID, input.Title, input.Description)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	start, err := services.StartFlow(ctx, u.ID, d.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.NewCreatedResponse("Decision created successfully", CreateDecisionResponse{
		DecisionItem: NewDecisionItem(*d),
		FirstPrompt:  start.Prompt,
		TotalPrompts: start.TotalPrompts,
	}))
}

// ListDecisions godoc
// @Summary List decisions
// @Description List the caller's decisions, 20 per page, by quadrant (default) or newest first
// @Tags decisions
// @Produce json
// @Security Bearer
// @Param sort query string false "quadrant or date" default(quadrant)
// @Param page query int false "Page number" default(1)
// @Success 200 {object} utils.Response{data=DecisionListResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /decisions [get]
func ListDecisions(c *gin.Context) {
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

	result, err := services.ListDecisions(c.Request.Context(), u.ID, c.Query("sort"), page)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Decisions retrieved successfully", DecisionListResponse{
		Decisions:   NewDecisionItems(result.Decisions),
		CurrentSort: result.CurrentSort,
		Pagination:  result.Pagination,
	}))
}

// GetDecision godoc
// @Summary Get a decision
// @Description Result view of one of the caller's decisions: quadrant (null until classified) and answers
// @Tags decisions
// @Produce json
// @Security Bearer
// @Param id path int true "Decision ID"
// @Success 200 {object} utils.Response{data=DecisionDetailResponse}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /decisions/{id} [get]
func GetDecision(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid decision ID"))
		return
	}

	detail, err := services.GetDecision(c.Request.Context(), u.ID, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Decision retrieved successfully", NewDecisionDetailResponse(detail)))
}
