package services

import (
	"context"
	"decide-backend/internal/database"
	"decide-backend/internal/models"
	"decide-backend/pkg/logger"
	_ "embed"
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// CatalogFile is the on-disk layout read by `seed prompts --file`.
type CatalogFile struct {
	Prompts []PromptInput `yaml:"prompts"`
}

// DefaultCatalog returns the two prompts the classifier needs.
func DefaultCatalog() ([]PromptInput, error) {
	return parseCatalog(defaultCatalog)
}

// LoadCatalogFile reads a YAML catalog from path.
func LoadCatalogFile(path string) ([]PromptInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read catalog file %s", path)
	}
	return parseCatalog(data)
}

func parseCatalog(data []byte) ([]PromptInput, error) {
	var file CatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "parse catalog")
	}
	if len(file.Prompts) == 0 {
		return nil, errors.Wrap(models.BadParameterError, "catalog has no prompts")
	}
	return file.Prompts, nil
}

// SeedCatalog upserts entries by slug. Existing prompts get the entry's order
// and text; answers already recorded against them are kept.
func SeedCatalog(ctx context.Context, entries []PromptInput) (created, updated int, err error) {
	err = database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, entry := range entries {
			in, err := entry.normalize()
			if err != nil {
				return err
			}

			var prompt models.Prompt
			err = tx.Where("slug = ?", in.Slug).First(&prompt).Error
			switch {
			case database.IsNotFoundError(err):
				if _, err := createPrompt(tx, in); err != nil {
					return err
				}
				created++
			case err != nil:
				return errors.Wrapf(err, "find prompt %q", in.Slug)
			default:
				if prompt.Order == in.Order && prompt.Text == in.Text {
					continue
				}
				prompt.Order, prompt.Text = in.Order, in.Text
				if err := tx.Save(&prompt).Error; err != nil {
					return errors.Wrapf(err, "update prompt %q", in.Slug)
				}
				updated++
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	InvalidateCatalog(ctx)
	logger.Log.Info("Prompt catalog seeded", zap.Int("created", created), zap.Int("updated", updated))
	return created, updated, nil
}
