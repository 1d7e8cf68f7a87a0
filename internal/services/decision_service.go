package services

import (
	"context"
	"decide-backend/internal/database"
	"decide-backend/internal/models"
	"decide-backend/internal/utils"
	"decide-backend/pkg/logger"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// PageSize is the fixed number of rows on every user-facing listing page.
const PageSize = 20

const (
	SortQuadrant = "quadrant"
	SortDate     = "date"
)

// QuadrantUnset filters the admin decision list to unclassified decisions.
const QuadrantUnset = "none"

// NormalizeSort resolves the requested sort key. Quadrant is the default;
// any unrecognised value falls back to date.
func NormalizeSort(sortKey string) string {
	switch sortKey {
	case "", SortQuadrant:
		return SortQuadrant
	default:
		return SortDate
	}
}

type DecisionPage struct {
	Decisions   []models.Decision `json:"decisions"`
	CurrentSort string            `json:"current_sort"`
	Pagination  utils.PageMeta    `json:"pagination"`
}

// DecisionDetail is the result view of one decision.
type DecisionDetail struct {
	Decision      models.Decision `json:"decision"`
	QuadrantLabel *string         `json:"quadrant_label"`
	Responses     []ResponseView  `json:"responses"`
}

type DecisionFilter struct {
	Quadrant string
	UserID   uint
	Search   string
	Page     int
	Limit    int
}

// CreateDecision stores a new unclassified decision for userID.
func CreateDecision(ctx context.Context, userID uint, title, description string) (*models.Decision, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.Wrap(models.BadParameterError, "title is required")
	}

	decision := &models.Decision{
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(description),
	}
	if err := database.DB.WithContext(ctx).Create(decision).Error; err != nil {
		return nil, errors.Wrap(err, "create decision")
	}

	decisionsCreated.Inc()
	logger.Log.Info("Decision created", zap.Uint("decision_id", decision.ID), zap.Uint("user_id", userID))
	return decision, nil
}

// findOwnedDecision hides decisions of other users behind ErrDecisionNotFound.
func findOwnedDecision(ctx context.Context, userID, decisionID uint) (*models.Decision, error) {
	var decision models.Decision
	err := database.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", decisionID, userID).
		First(&decision).Error
	if err != nil {
		if database.IsNotFoundError(err) {
			return nil, models.ErrDecisionNotFound
		}
		return nil, errors.Wrap(err, "find decision")
	}
	return &decision, nil
}

// GetDecision returns the result view of a decision owned by userID.
func GetDecision(ctx context.Context, userID, decisionID uint) (*DecisionDetail, error) {
	decision, err := findOwnedDecision(ctx, userID, decisionID)
	if err != nil {
		return nil, err
	}
	return decisionDetail(ctx, decision)
}

// GetDecisionByID returns any decision, for administrators.
func GetDecisionByID(ctx context.Context, decisionID uint) (*DecisionDetail, error) {
	var decision models.Decision
	if err := database.DB.WithContext(ctx).First(&decision, decisionID).Error; err != nil {
		if database.IsNotFoundError(err) {
			return nil, models.ErrDecisionNotFound
		}
		return nil, errors.Wrap(err, "find decision")
	}
	return decisionDetail(ctx, &decision)
}

func decisionDetail(ctx context.Context, decision *models.Decision) (*DecisionDetail, error) {
	responses, err := decisionResponses(ctx, decision.ID)
	if err != nil {
		return nil, err
	}

	detail := &DecisionDetail{Decision: *decision, Responses: responses}
	if decision.Quadrant != nil {
		label := decision.QuadrantLabel()
		detail.QuadrantLabel = &label
	}
	return detail, nil
}

// sortByQuadrant orders decisions Q1..Q4 then unset. The sort is stable, so
// the newest-first order of the input is kept inside each group.
func sortByQuadrant(decisions []models.Decision) {
	sort.SliceStable(decisions, func(i, j int) bool {
		return models.QuadrantRank(decisions[i].Quadrant) < models.QuadrantRank(decisions[j].Quadrant)
	})
}

// pageBounds validates page against total rows and returns the slice bounds.
func pageBounds(page, pageSize int, total int64) (int, int, error) {
	if page < 1 {
		return 0, 0, models.ErrInvalidPage
	}
	meta := utils.NewPageMeta(page, pageSize, total)
	if page > meta.TotalPages {
		return 0, 0, errors.Wrapf(models.ErrPageOutOfRange, "page %d of %d", page, meta.TotalPages)
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > int(total) {
		end = int(total)
	}
	return start, end, nil
}

// ListDecisions returns one page of the decisions owned by userID.
func ListDecisions(ctx context.Context, userID uint, sortKey string, page int) (*DecisionPage, error) {
	sortKey = NormalizeSort(sortKey)

	var decisions []models.Decision
	err := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").Order("id desc").
		Find(&decisions).Error
	if err != nil {
		return nil, errors.Wrap(err, "list decisions")
	}

	if sortKey == SortQuadrant {
		sortByQuadrant(decisions)
	}

	total := int64(len(decisions))
	start, end, err := pageBounds(page, PageSize, total)
	if err != nil {
		return nil, err
	}

	return &DecisionPage{
		Decisions:   decisions[start:end],
		CurrentSort: sortKey,
		Pagination:  utils.NewPageMeta(page, PageSize, total),
	}, nil
}

// FindDecisions is the administrative listing across all users.
func FindDecisions(ctx context.Context, filter DecisionFilter) ([]models.Decision, int64, error) {
	var decisions []models.Decision
	var total int64

	db := database.DB.WithContext(ctx).Model(&models.Decision{})
	switch filter.Quadrant {
	case "":
	case QuadrantUnset:
		db = db.Where("decisions.quadrant IS NULL")
	default:
		if !models.Quadrant(filter.Quadrant).Valid() {
			return nil, 0, errors.Wrapf(models.ErrInvalidQuadrant, "%q", filter.Quadrant)
		}
		db = db.Where("decisions.quadrant = ?", filter.Quadrant)
	}
	if filter.UserID != 0 {
		db = db.Where("decisions.user_id = ?", filter.UserID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		db = db.Joins("JOIN users ON users.id = decisions.user_id").
			Where("decisions.title LIKE ? OR decisions.description LIKE ? OR users.username LIKE ?", like, like, like)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count decisions")
	}

	offset := (filter.Page - 1) * filter.Limit
	err := db.Order("decisions.created_at desc").Order("decisions.id desc").
		Offset(offset).Limit(filter.Limit).
		Find(&decisions).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "find decisions")
	}

	return decisions, total, nil
}
