package decision

import (
	"decide-backend/internal/models"
	"decide-backend/internal/services"
	"decide-backend/internal/utils"
	"time"
)

type CreateDecisionInput struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
}

// DecisionItem is a decision as shown in listings.
type DecisionItem struct {
	ID            uint             `json:"id"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	CreatedAt     time.Time        `json:"created_at"`
	Quadrant      *models.Quadrant `json:"quadrant"`
	QuadrantLabel *string          `json:"quadrant_label"`
}

func NewDecisionItem(d models.Decision) DecisionItem {
	item := DecisionItem{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		Quadrant:    d.Quadrant,
	}
	if d.Quadrant != nil {
		label := d.QuadrantLabel()
		item.QuadrantLabel = &label
	}
	return item
}

func NewDecisionItems(decisions []models.Decision) []DecisionItem {
	items := make([]DecisionItem, 0, len(decisions))
	for _, d := range decisions {
		items = append(items, NewDecisionItem(d))
	}
	return items
}

// CreateDecisionResponse carries the new decision and the prompt that starts
// its flow.
type CreateDecisionResponse struct {
	DecisionItem
	FirstPrompt  *models.Prompt `json:"first_prompt"`
	TotalPrompts int            `json:"total_prompts"`
}

type DecisionListResponse struct {
	Decisions   []DecisionItem `json:"decisions"`
	CurrentSort string         `json:"current_sort"`
	Pagination  utils.PageMeta `json:"pagination"`
}

type DecisionDetailResponse struct {
	DecisionItem
	ClassifiedWith map[string]interface{}  `json:"classified_with,omitempty"`
	Responses      []services.ResponseView `json:"responses"`
}

func NewDecisionDetailResponse(detail *services.DecisionDetail) DecisionDetailResponse {
	return DecisionDetailResponse{
		DecisionItem:   NewDecisionItem(detail.Decision),
		ClassifiedWith: detail.Decision.ClassifiedWith,
		Responses:      detail.Responses,
	}
}
