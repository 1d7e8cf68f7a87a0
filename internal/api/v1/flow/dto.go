package flow

import (
	"decide-backend/internal/models"
	"decide-backend/internal/services"
)

type SubmitAnswerInput struct {
	PromptID *uint `json:"prompt_id" binding:"required"`
	Answer   *bool `json:"answer" binding:"required"`
}

type FlowStartResponse struct {
	Decision     models.Decision `json:"decision"`
	Prompt       *models.Prompt  `json:"prompt"`
	TotalPrompts int             `json:"total_prompts"`
}

// FlowStepResponse holds either the next prompt or the assigned quadrant
// label.
type FlowStepResponse struct {
	State        string `json:"state"`
	PromptID     *uint  `json:"prompt_id,omitempty"`
	Text         string `json:"text,omitempty"`
	Quadrant     string `json:"quadrant,omitempty"`
	QuadrantCode string `json:"quadrant_code,omitempty"`
	Answered     int    `json:"answered"`
	TotalPrompts int    `json:"total_prompts"`
}

func NewFlowStepResponse(step *services.FlowStep) FlowStepResponse {
	resp := FlowStepResponse{
		State:        step.State(),
		Answered:     step.Answered,
		TotalPrompts: step.Total,
	}
	if step.Next != nil {
		id := step.Next.PromptID
		resp.PromptID = &id
		resp.Text = step.Next.Text
	}
	if step.Quadrant != nil {
		resp.Quadrant = step.Quadrant.Label()
		resp.QuadrantCode = string(*step.Quadrant)
	}
	return resp
}
