package flow

import (
	"decide-backend/internal/middleware"
	"decide-backend/internal/services"
	"decide-backend/internal/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

func decisionID(c *gin.Context) (uint, bool) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid decision ID"))
	}
	return id, ok
}

// StartFlow godoc
// @Summary Begin a decision flow
// @Description Returns the decision, the first prompt of the catalog and the catalog size
// @Tags flow
// @Produce json
// @Security Bearer
// @Param id path int true "Decision ID"
// @Success 200 {object} utils.Response{data=FlowStartResponse}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /decisions/{id}/flow [get]
func StartFlow(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	id, ok := decisionID(c)
	if !ok {
		return
	}

	start, err := services.StartFlow(c.Request.Context(), u.ID, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Flow started", FlowStartResponse{
		Decision:     start.Decision,
		Prompt:       start.Prompt,
		TotalPrompts: start.TotalPrompts,
	}))
}

// CurrentStep godoc
// @Summary Current flow step
// @Description Next unanswered prompt, or the quadrant once every prompt is answered. Never writes.
// @Tags flow
// @Produce json
// @Security Bearer
// @Param id path int true "Decision ID"
// @Success 200 {object} utils.Response{data=FlowStepResponse}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /decisions/{id}/flow/state [get]
func CurrentStep(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	id, ok := decisionID(c)
	if !ok {
		return
	}

	step, err := services.CurrentStep(c.Request.Context(), u.ID, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Flow state retrieved", NewFlowStepResponse(step)))
}

// SubmitAnswer godoc
// @Summary Answer a prompt
// @Description Record a yes/no answer and return the next prompt or, after the last one, the quadrant
// @Tags flow
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Decision ID"
// @Param input body SubmitAnswerInput true "Answer"
// @Success 200 {object} utils.Response{data=FlowStepResponse}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Failure 413 {object} utils.Response
// @Router /decisions/{id}/flow [post]
func SubmitAnswer(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	id, ok := decisionID(c)
	if !ok {
		return
	}

	var input SubmitAnswerInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	step, err := services.SubmitAnswer(c.Request.Context(), u.ID, id, *input.PromptID, *input.Answer)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	message := "Answer recorded"
	if step.Quadrant != nil {
		message = "Decision classified"
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse(message, NewFlowStepResponse(step)))
}
