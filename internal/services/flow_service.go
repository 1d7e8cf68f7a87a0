package services

import (
	"context"
	"decide-backend/internal/database"
	"decide-backend/internal/models"
	"decide-backend/pkg/logger"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	FlowAwaitingAnswers = "awaiting_answers"
	FlowComplete        = "complete"
	// FlowNoPrompts is reported while the catalog is empty.
	FlowNoPrompts = "no_prompts"
)

// FlowStart is what a user sees when opening the flow of a decision.
type FlowStart struct {
	Decision     models.Decision `json:"decision"`
	Prompt       *models.Prompt  `json:"prompt"`
	TotalPrompts int             `json:"total_prompts"`
}

// NextPrompt is the question the user has to answer next.
type NextPrompt struct {
	PromptID uint   `json:"prompt_id"`
	Text     string `json:"text"`
}

// FlowStep is the outcome of a submission: either the next prompt or, once
// the catalog is exhausted, the assigned quadrant.
type FlowStep struct {
	Next     *NextPrompt
	Quadrant *models.Quadrant
	Answered int
	Total    int
}

func (s *FlowStep) State() string {
	switch {
	case s.Quadrant != nil:
		return FlowComplete
	case s.Next != nil:
		return FlowAwaitingAnswers
	default:
		return FlowNoPrompts
	}
}

// StartFlow returns the first prompt of the catalog for a decision owned by
// userID. Prompt is nil when the catalog is empty.
func StartFlow(ctx context.Context, userID, decisionID uint) (*FlowStart, error) {
	decision, err := findOwnedDecision(ctx, userID, decisionID)
	if err != nil {
		return nil, err
	}

	catalog, err := LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	start := &FlowStart{Decision: *decision, TotalPrompts: len(catalog)}
	if len(catalog) > 0 {
		first := catalog[0]
		start.Prompt = &first
	}
	return start, nil
}

// SubmitAnswer records the answer to one prompt and advances the flow. The
// insert, the next-prompt lookup and the classification share a transaction.
func SubmitAnswer(ctx context.Context, userID, decisionID, promptID uint, answer bool) (*FlowStep, error) {
	if _, err := findOwnedDecision(ctx, userID, decisionID); err != nil {
		return nil, err
	}
	if _, err := GetPrompt(ctx, promptID); err != nil {
		return nil, err
	}

	catalog, err := LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	var step *FlowStep
	err = database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		response := &models.DecisionResponse{
			DecisionID: decisionID,
			PromptID:   promptID,
			Answer:     answer,
		}
		if err := tx.Create(response).Error; err != nil {
			if database.IsUniqueViolationError(err) {
				duplicateResponses.Inc()
				return errors.Wrapf(models.ErrDuplicateResponse, "decision %d prompt %d", decisionID, promptID)
			}
			return errors.Wrap(err, "record response")
		}

		var err error
		step, err = advance(tx, decisionID, catalog)
		return err
	})
	if err != nil {
		return nil, err
	}
	responsesRecorded.Inc()

	// A concurrent submit for the last other prompt may have committed after
	// our transaction read the ledger. Whichever commits last sees both.
	if step.Next != nil {
		step, err = advance(database.DB.WithContext(ctx), decisionID, catalog)
		if err != nil {
			return nil, err
		}
	}
	return step, nil
}

// CurrentStep reports where the flow of a decision stands without writing
// anything. A decision with every prompt answered but no stored quadrant
// reports the quadrant its ledger classifies to.
func CurrentStep(ctx context.Context, userID, decisionID uint) (*FlowStep, error) {
	decision, err := findOwnedDecision(ctx, userID, decisionID)
	if err != nil {
		return nil, err
	}

	catalog, err := LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	answered, err := answeredPrompts(database.DB.WithContext(ctx), decisionID)
	if err != nil {
		return nil, err
	}

	step := &FlowStep{Answered: len(answered), Total: len(catalog)}
	if decision.Quadrant != nil {
		step.Quadrant = decision.Quadrant
		return step, nil
	}
	if len(catalog) == 0 {
		return step, nil
	}
	if step.Next = nextPrompt(catalog, answered); step.Next != nil {
		return step, nil
	}

	input, err := ledgerInput(database.DB.WithContext(ctx), decisionID)
	if err != nil {
		return nil, err
	}
	quadrant := Classify(input)
	step.Quadrant = &quadrant
	logger.Log.Warn("Decision fully answered but unclassified",
		zap.Uint("decision_id", decisionID),
		zap.String("quadrant", string(quadrant)),
	)
	return step, nil
}

// CompleteAnsweredDecisions classifies every unclassified decision that has
// an answer for each prompt of the current catalog. It runs after a prompt
// is deleted, since that can leave a decision with nothing left to answer,
// and once at startup.
func CompleteAnsweredDecisions(ctx context.Context) (int, error) {
	catalog, err := LoadCatalog(ctx)
	if err != nil {
		return 0, err
	}
	if len(catalog) == 0 {
		return 0, nil
	}

	promptIDs := make([]uint, 0, len(catalog))
	for _, p := range catalog {
		promptIDs = append(promptIDs, p.ID)
	}

	var decisionIDs []uint
	err = database.DB.WithContext(ctx).Model(&models.DecisionResponse{}).
		Joins("JOIN decisions ON decisions.id = decision_responses.decision_id").
		Where("decisions.quadrant IS NULL AND decision_responses.prompt_id IN ?", promptIDs).
		Group("decision_responses.decision_id").
		Having("COUNT(DISTINCT decision_responses.prompt_id) = ?", len(promptIDs)).
		Pluck("decision_responses.decision_id", &decisionIDs).Error
	if err != nil {
		return 0, errors.Wrap(err, "find fully answered decisions")
	}

	for _, id := range decisionIDs {
		err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			_, err := completeDecision(tx, id)
			return err
		})
		if err != nil {
			return 0, err
		}
	}
	return len(decisionIDs), nil
}

func answeredPrompts(tx *gorm.DB, decisionID uint) (map[uint]bool, error) {
	var ids []uint
	err := tx.Model(&models.DecisionResponse{}).
		Where("decision_id = ?", decisionID).
		Pluck("prompt_id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "load answered prompts")
	}

	answered := make(map[uint]bool, len(ids))
	for _, id := range ids {
		answered[id] = true
	}
	return answered, nil
}

// nextPrompt is the first catalog prompt without an answer, nil when every
// prompt has one.
func nextPrompt(catalog []models.Prompt, answered map[uint]bool) *NextPrompt {
	for _, p := range catalog {
		if !answered[p.ID] {
			return &NextPrompt{PromptID: p.ID, Text: p.Text}
		}
	}
	return nil
}

func advance(tx *gorm.DB, decisionID uint, catalog []models.Prompt) (*FlowStep, error) {
	answered, err := answeredPrompts(tx, decisionID)
	if err != nil {
		return nil, err
	}

	step := &FlowStep{Answered: len(answered), Total: len(catalog)}
	if next := nextPrompt(catalog, answered); next != nil {
		step.Next = next
		return step, nil
	}

	quadrant, err := completeDecision(tx, decisionID)
	if err != nil {
		return nil, err
	}
	step.Quadrant = &quadrant
	return step, nil
}

// completeDecision classifies the decision from its ledger. The quadrant is
// written only while unset, so a decision keeps the first quadrant it got.
func completeDecision(tx *gorm.DB, decisionID uint) (models.Quadrant, error) {
	input, err := ledgerInput(tx, decisionID)
	if err != nil {
		return "", err
	}
	quadrant := Classify(input)

	result := tx.Model(&models.Decision{}).
		Where("id = ? AND quadrant IS NULL", decisionID).
		Updates(map[string]interface{}{
			"quadrant":        string(quadrant),
			"classified_with": input.Snapshot(),
		})
	if result.Error != nil {
		return "", errors.Wrap(result.Error, "persist quadrant")
	}

	if result.RowsAffected == 0 {
		var decision models.Decision
		if err := tx.Select("quadrant").First(&decision, decisionID).Error; err != nil {
			return "", errors.Wrap(err, "reload decision")
		}
		if decision.Quadrant != nil {
			return *decision.Quadrant, nil
		}
		return quadrant, nil
	}

	decisionsClassified.WithLabelValues(string(quadrant)).Inc()
	logger.Log.Info("Decision classified",
		zap.Uint("decision_id", decisionID),
		zap.String("quadrant", string(quadrant)),
	)
	return quadrant, nil
}

// ledgerInput reduces the recorded answers of a decision to classifier input.
func ledgerInput(tx *gorm.DB, decisionID uint) (ClassificationInput, error) {
	var rows []struct {
		Slug   string
		Answer bool
	}
	err := tx.Model(&models.DecisionResponse{}).
		Select("prompts.slug AS slug, decision_responses.answer AS answer").
		Joins("JOIN prompts ON prompts.id = decision_responses.prompt_id").
		Where("decision_responses.decision_id = ?", decisionID).
		Scan(&rows).Error
	if err != nil {
		return ClassificationInput{}, errors.Wrap(err, "load decision answers")
	}

	answers := make(map[string]bool, len(rows))
	for _, row := range rows {
		answers[row.Slug] = row.Answer
	}
	return ClassificationInputFrom(answers), nil
}
