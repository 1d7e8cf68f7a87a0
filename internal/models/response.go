package models

import (
	"fmt"
	"time"
)

// DecisionResponse records one answer to one prompt within one decision. A
// prompt can be answered at most once per decision.
type DecisionResponse struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	DecisionID uint      `gorm:"not null;uniqueIndex:idx_decision_prompt" json:"decision_id"`
	Decision   Decision  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	PromptID   uint      `gorm:"not null;uniqueIndex:idx_decision_prompt;index" json:"prompt_id"`
	Prompt     Prompt    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Answer     bool      `gorm:"not null" json:"answer"`
	AnsweredAt time.Time `gorm:"autoCreateTime;index" json:"answered_at"`
}

func (r DecisionResponse) String() string {
	return fmt.Sprintf("%s → %s = %t", r.Decision.Title, r.Prompt.Slug, r.Answer)
}
