package prompt

import (
	"decide-backend/internal/services"
	"decide-backend/internal/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListPrompts godoc
// @Summary List prompts
// @Description Get a paginated list of catalog prompts in presentation order. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Search slug or text"
// @Success 200 {object} utils.Response{data=PromptListResponse}
// @Failure 400 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/prompts [get]
func ListPrompts(c *gin.Context) {
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

	prompts, total, err := services.ListPrompts(c.Request.Context(), services.PromptFilter{
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompts retrieved successfully", PromptListResponse{
		Prompts: prompts,
		Total:   total,
		Page:    page,
		Limit:   limit,
	}))
}

// CreatePrompt godoc
// @Summary Create a prompt
// @Description Add a prompt to the catalog. The slug is derived from the text when omitted. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param input body CreatePromptInput true "Prompt"
// @Success 201 {object} utils.Response{data=models.Prompt}
// @Failure 400 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /admin/prompts [post]
func CreatePrompt(c *gin.Context) {
	var input CreatePromptInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	prompt, err := services.CreatePrompt(c.Request.Context(), input.toService())
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.NewCreatedResponse("Prompt created successfully", prompt))
}

// BatchCreatePrompts godoc
// @Summary Create prompts in bulk
// @Description Add several prompts at once; nothing is stored if one fails. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param input body BatchCreatePromptInput true "Prompts"
// @Success 201 {object} utils.Response{data=[]models.Prompt}
// @Failure 400 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /admin/prompts/batch [post]
func BatchCreatePrompts(c *gin.Context) {
	var input BatchCreatePromptInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	inputs := make([]services.PromptInput, 0, len(input.Prompts))
	for _, p := range input.Prompts {
		inputs = append(inputs, p.toService())
	}

	prompts, err := services.BatchCreatePrompts(c.Request.Context(), inputs)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.NewCreatedResponse("Prompts created successfully", prompts))
}

// GetPrompt godoc
// @Summary Get a prompt
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path int true "Prompt ID"
// @Success 200 {object} utils.Response{data=models.Prompt}
// @Failure 404 {object} utils.Response
// @Router /admin/prompts/{id} [get]
func GetPrompt(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid prompt ID"))
		return
	}

	prompt, err := services.GetPrompt(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt retrieved successfully", prompt))
}

// UpdatePrompt godoc
// @Summary Update a prompt
// @Description Change slug, order or text of a prompt. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Prompt ID"
// @Param input body UpdatePromptInput true "Fields to change"
// @Success 200 {object} utils.Response{data=models.Prompt}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /admin/prompts/{id} [put]
func UpdatePrompt(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid prompt ID"))
		return
	}

	var input UpdatePromptInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	prompt, err := services.UpdatePrompt(c.Request.Context(), id, services.PromptUpdate{
		Slug:  input.Slug,
		Order: input.Order,
		Text:  input.Text,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt updated successfully", prompt))
}

// DeletePrompt godoc
// @Summary Delete a prompt
// @Description Remove a prompt and every answer recorded for it. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path int true "Prompt ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /admin/prompts/{id} [delete]
func DeletePrompt(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid prompt ID"))
		return
	}

	if err := services.DeletePrompt(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt deleted successfully", nil))
}
