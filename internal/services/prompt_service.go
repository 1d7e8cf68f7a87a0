package services

import (
	"context"
	"decide-backend/internal/database"
	"decide-backend/internal/models"
	"decide-backend/pkg/logger"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	CatalogCacheKey      = "prompt:catalog"
	CatalogGenerationKey = "prompt:catalog:gen"
	maxSlugLength        = 50
)

// CatalogCacheDuration bounds how long a cached catalog survives without an
// admin edit. serve overrides it from CATALOG_CACHE_TTL.
var CatalogCacheDuration = time.Hour

// PromptInput is one catalog entry as written by an administrator or a
// catalog file. An empty Slug is derived from Text.
type PromptInput struct {
	Slug  string `json:"slug" yaml:"slug"`
	Order uint   `json:"order" yaml:"order"`
	Text  string `json:"text" yaml:"text"`
}

// PromptUpdate changes only the non-nil fields.
type PromptUpdate struct {
	Slug  *string
	Order *uint
	Text  *string
}

type PromptFilter struct {
	Search string
	Page   int
	Limit  int
}

func orderedPrompts(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order asc").Order("id asc")
}

// LoadCatalog returns every prompt in presentation order. The list is cached
// in Redis and dropped whenever an administrator edits the catalog. A load
// that overlaps an invalidation is returned but not cached.
func LoadCatalog(ctx context.Context) ([]models.Prompt, error) {
	var generation string
	if database.RedisClient != nil {
		val, err := database.RedisClient.Get(ctx, CatalogCacheKey).Result()
		if err == nil {
			var prompts []models.Prompt
			if err := json.Unmarshal([]byte(val), &prompts); err == nil {
				catalogCacheLookups.WithLabelValues("hit").Inc()
				return prompts, nil
			}
		}
		catalogCacheLookups.WithLabelValues("miss").Inc()
		generation = catalogGeneration(ctx, database.RedisClient)
	}

	prompts, err := loadCatalogRows(ctx)
	if err != nil {
		return nil, err
	}

	if database.RedisClient != nil {
		if err := cacheCatalog(ctx, prompts, generation); err != nil {
			logger.Log.Warn("Failed to cache prompt catalog", zap.Error(err))
		}
	}

	return prompts, nil
}

var loadCatalogRows = func(ctx context.Context) ([]models.Prompt, error) {
	var prompts []models.Prompt
	if err := orderedPrompts(database.DB.WithContext(ctx)).Find(&prompts).Error; err != nil {
		return nil, errors.Wrap(err, "load prompt catalog")
	}
	return prompts, nil
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func catalogGeneration(ctx context.Context, c stringGetter) string {
	gen, err := c.Get(ctx, CatalogGenerationKey).Result()
	if err != nil {
		return ""
	}
	return gen
}

// cacheCatalog stores prompts only while the generation still matches the one
// observed before the rows were read.
func cacheCatalog(ctx context.Context, prompts []models.Prompt, generation string) error {
	data, err := json.Marshal(prompts)
	if err != nil {
		return errors.Wrap(err, "encode prompt catalog")
	}

	err = database.RedisClient.Watch(ctx, func(tx *redis.Tx) error {
		if catalogGeneration(ctx, tx) != generation {
			return redis.TxFailedErr
		}
		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, CatalogCacheKey, data, CatalogCacheDuration)
			return nil
		})
		return err
	}, CatalogGenerationKey)
	if errors.Is(err, redis.TxFailedErr) {
		logger.Log.Debug("Prompt catalog changed during load, skipping cache")
		return nil
	}
	return err
}

// InvalidateCatalog bumps the catalog generation and drops the cached catalog.
func InvalidateCatalog(ctx context.Context) {
	if database.RedisClient == nil {
		return
	}
	_, err := database.RedisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, CatalogGenerationKey)
		pipe.Del(ctx, CatalogCacheKey)
		return nil
	})
	if err != nil {
		logger.Log.Warn("Failed to invalidate prompt catalog cache", zap.Error(err))
	}
}

var (
	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	slugSeparate = regexp.MustCompile(`[-\s]+`)
)

// Slugify lowercases text, drops everything but ASCII word characters and
// collapses whitespace runs into single hyphens.
func Slugify(text string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(text), "")
	slug = slugSeparate.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-_")
	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-_")
	}
	return slug
}

func (in PromptInput) normalize() (PromptInput, error) {
	in.Text = strings.TrimSpace(in.Text)
	in.Slug = strings.TrimSpace(in.Slug)
	if in.Text == "" {
		return in, errors.Wrap(models.BadParameterError, "prompt text is required")
	}
	if in.Slug == "" {
		in.Slug = Slugify(in.Text)
	}
	if in.Slug == "" || in.Slug != Slugify(in.Slug) {
		return in, errors.Wrapf(models.BadParameterError, "invalid prompt slug %q", in.Slug)
	}
	return in, nil
}

func createPrompt(tx *gorm.DB, in PromptInput) (*models.Prompt, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	prompt := &models.Prompt{Slug: in.Slug, Order: in.Order, Text: in.Text}
	if err := tx.Create(prompt).Error; err != nil {
		if database.IsUniqueViolationError(err) {
			return nil, errors.Wrapf(models.ErrPromptSlugTaken, "slug %q", in.Slug)
		}
		return nil, errors.Wrap(err, "create prompt")
	}
	return prompt, nil
}

// CreatePrompt creates a new prompt
func CreatePrompt(ctx context.Context, in PromptInput) (*models.Prompt, error) {
	prompt, err := createPrompt(database.DB.WithContext(ctx), in)
	if err != nil {
		return nil, err
	}
	InvalidateCatalog(ctx)
	logger.Log.Info("Prompt created", zap.Uint("prompt_id", prompt.ID), zap.String("slug", prompt.Slug))
	return prompt, nil
}

// BatchCreatePrompts creates multiple prompts in a transaction
func BatchCreatePrompts(ctx context.Context, inputs []PromptInput) ([]models.Prompt, error) {
	var created []models.Prompt
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, in := range inputs {
			prompt, err := createPrompt(tx, in)
			if err != nil {
				return err
			}
			created = append(created, *prompt)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	InvalidateCatalog(ctx)
	return created, nil
}

func GetPrompt(ctx context.Context, id uint) (*models.Prompt, error) {
	var prompt models.Prompt
	if err := database.DB.WithContext(ctx).First(&prompt, id).Error; err != nil {
		if database.IsNotFoundError(err) {
			return nil, models.ErrPromptNotFound
		}
		return nil, errors.Wrap(err, "find prompt")
	}
	return &prompt, nil
}

// UpdatePrompt updates an existing prompt
func UpdatePrompt(ctx context.Context, id uint, upd PromptUpdate) (*models.Prompt, error) {
	prompt, err := GetPrompt(ctx, id)
	if err != nil {
		return nil, err
	}

	in := PromptInput{Slug: prompt.Slug, Order: prompt.Order, Text: prompt.Text}
	if upd.Slug != nil {
		in.Slug = *upd.Slug
	}
	if upd.Order != nil {
		in.Order = *upd.Order
	}
	if upd.Text != nil {
		in.Text = *upd.Text
	}
	if in, err = in.normalize(); err != nil {
		return nil, err
	}

	prompt.Slug, prompt.Order, prompt.Text = in.Slug, in.Order, in.Text
	if err := database.DB.WithContext(ctx).Save(prompt).Error; err != nil {
		if database.IsUniqueViolationError(err) {
			return nil, errors.Wrapf(models.ErrPromptSlugTaken, "slug %q", in.Slug)
		}
		return nil, errors.Wrap(err, "update prompt")
	}

	InvalidateCatalog(ctx)
	return prompt, nil
}

// DeletePrompt removes a prompt and, through the foreign key, every answer
// recorded for it.
func DeletePrompt(ctx context.Context, id uint) error {
	result := database.DB.WithContext(ctx).Delete(&models.Prompt{}, id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "delete prompt")
	}
	if result.RowsAffected == 0 {
		return models.ErrPromptNotFound
	}

	InvalidateCatalog(ctx)
	logger.Log.Info("Prompt deleted", zap.Uint("prompt_id", id))

	completed, err := CompleteAnsweredDecisions(ctx)
	if err != nil {
		return errors.Wrap(err, "complete decisions after prompt removal")
	}
	if completed > 0 {
		logger.Log.Info("Decisions completed by prompt removal", zap.Int("count", completed))
	}
	return nil
}

// ListPrompts retrieves a paginated list of prompts in catalog order
func ListPrompts(ctx context.Context, filter PromptFilter) ([]models.Prompt, int64, error) {
	var prompts []models.Prompt
	var total int64

	db := database.DB.WithContext(ctx).Model(&models.Prompt{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		db = db.Where("slug LIKE ? OR text LIKE ?", like, like)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count prompts")
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := orderedPrompts(db).Offset(offset).Limit(filter.Limit).Find(&prompts).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list prompts")
	}

	return prompts, total, nil
}
