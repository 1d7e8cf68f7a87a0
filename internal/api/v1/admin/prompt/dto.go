package prompt

import (
	"decide-backend/internal/models"
	"decide-backend/internal/services"
)

type CreatePromptInput struct {
	Slug  string `json:"slug" binding:"omitempty,max=50"`
	Order *uint  `json:"order" binding:"required"`
	Text  string `json:"text" binding:"required,max=255"`
}

func (in CreatePromptInput) toService() services.PromptInput {
	return services.PromptInput{Slug: in.Slug, Order: *in.Order, Text: in.Text}
}

type BatchCreatePromptInput struct {
	Prompts []CreatePromptInput `json:"prompts" binding:"required,min=1,dive"`
}

type UpdatePromptInput struct {
	Slug  *string `json:"slug" binding:"omitempty,max=50"`
	Order *uint   `json:"order"`
	Text  *string `json:"text" binding:"omitempty,max=255"`
}

type PromptListResponse struct {
	Prompts []models.Prompt `json:"prompts"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
}
