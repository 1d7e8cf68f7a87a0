package services

import (
	"bytes"
	"context"
	"decide-backend/internal/database"
	"decide-backend/internal/models"
	"decide-backend/internal/utils"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"gorm.io/gorm"
)

// ResponseView is one ledger row together with the decision and prompt it
// refers to.
type ResponseView struct {
	ID            uint      `json:"id"`
	DecisionID    uint      `json:"decision_id"`
	DecisionTitle string    `json:"decision_title"`
	PromptID      uint      `json:"prompt_id"`
	PromptSlug    string    `json:"prompt_slug"`
	PromptText    string    `json:"prompt_text"`
	Answer        bool      `json:"answer"`
	AnsweredAt    time.Time `json:"answered_at"`
}

type ResponsePage struct {
	Responses  []ResponseView `json:"responses"`
	Pagination utils.PageMeta `json:"pagination"`
}

// ResponseFilter defines criteria for the administrative response listing
type ResponseFilter struct {
	Answer   *bool
	PromptID uint
	Search   string
	Page     int
	Limit    int
}

func newResponseView(r models.DecisionResponse) ResponseView {
	return ResponseView{
		ID:            r.ID,
		DecisionID:    r.DecisionID,
		DecisionTitle: r.Decision.Title,
		PromptID:      r.PromptID,
		PromptSlug:    r.Prompt.Slug,
		PromptText:    r.Prompt.Text,
		Answer:        r.Answer,
		AnsweredAt:    r.AnsweredAt,
	}
}

func newResponseViews(responses []models.DecisionResponse) []ResponseView {
	views := make([]ResponseView, 0, len(responses))
	for _, r := range responses {
		views = append(views, newResponseView(r))
	}
	return views
}

func newestAnswered(db *gorm.DB) *gorm.DB {
	return db.Order("decision_responses.answered_at desc").Order("decision_responses.id desc")
}

func ownedResponses(ctx context.Context, userID uint) *gorm.DB {
	owned := database.DB.WithContext(ctx).Model(&models.Decision{}).Select("id").Where("user_id = ?", userID)
	return database.DB.WithContext(ctx).Model(&models.DecisionResponse{}).
		Where("decision_responses.decision_id IN (?)", owned)
}

// decisionResponses returns the answers of one decision in catalog order.
func decisionResponses(ctx context.Context, decisionID uint) ([]ResponseView, error) {
	var responses []models.DecisionResponse
	err := database.DB.WithContext(ctx).
		Preload("Decision").Preload("Prompt").
		Joins("JOIN prompts ON prompts.id = decision_responses.prompt_id").
		Where("decision_responses.decision_id = ?", decisionID).
		Order("prompts.sort_order asc").Order("prompts.id asc").
		Find(&responses).Error
	if err != nil {
		return nil, errors.Wrap(err, "list decision responses")
	}
	return newResponseViews(responses), nil
}

// ListResponses returns one page of every answer given on decisions owned by
// userID, newest first.
func ListResponses(ctx context.Context, userID uint, page int) (*ResponsePage, error) {
	var total int64
	if err := ownedResponses(ctx, userID).Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "count responses")
	}

	start, end, err := pageBounds(page, PageSize, total)
	if err != nil {
		return nil, err
	}

	var responses []models.DecisionResponse
	err = newestAnswered(ownedResponses(ctx, userID)).
		Preload("Decision").Preload("Prompt").
		Offset(start).Limit(end - start).
		Find(&responses).Error
	if err != nil {
		return nil, errors.Wrap(err, "list responses")
	}

	return &ResponsePage{
		Responses:  newResponseViews(responses),
		Pagination: utils.NewPageMeta(page, PageSize, total),
	}, nil
}

// AllResponses returns the full ledger of userID, newest first.
func AllResponses(ctx context.Context, userID uint) ([]ResponseView, error) {
	var responses []models.DecisionResponse
	err := newestAnswered(ownedResponses(ctx, userID)).
		Preload("Decision").Preload("Prompt").
		Find(&responses).Error
	if err != nil {
		return nil, errors.Wrap(err, "list responses")
	}
	return newResponseViews(responses), nil
}

// FindResponses retrieves a paginated list of responses with filtering
func FindResponses(ctx context.Context, filter ResponseFilter) ([]ResponseView, int64, error) {
	var responses []models.DecisionResponse
	var total int64

	query := database.DB.WithContext(ctx).Model(&models.DecisionResponse{})

	if filter.Answer != nil {
		query = query.Where("decision_responses.answer = ?", *filter.Answer)
	}
	if filter.PromptID != 0 {
		query = query.Where("decision_responses.prompt_id = ?", filter.PromptID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.
			Joins("JOIN decisions ON decisions.id = decision_responses.decision_id").
			Joins("JOIN prompts ON prompts.id = decision_responses.prompt_id").
			Where("decisions.title LIKE ? OR prompts.slug LIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count responses")
	}

	offset := (filter.Page - 1) * filter.Limit
	err := newestAnswered(query).
		Preload("Decision").Preload("Prompt").
		Limit(filter.Limit).Offset(offset).
		Find(&responses).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "find responses")
	}

	return newResponseViews(responses), total, nil
}

// GenerateResponseCSV generates a CSV file content for responses
func GenerateResponseCSV(responses []ResponseView) ([]byte, error) {
	b := &bytes.Buffer{}
	w := csv.NewWriter(b)

	header := []string{"ID", "Answered At", "Decision ID", "Decision", "Prompt", "Question", "Answer"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, r := range responses {
		record := []string{
			fmt.Sprintf("%d", r.ID),
			r.AnsweredAt.Format(time.RFC3339),
			fmt.Sprintf("%d", r.DecisionID),
			r.DecisionTitle,
			r.PromptSlug,
			r.PromptText,
			strconv.FormatBool(r.Answer),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}
