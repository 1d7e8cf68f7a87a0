package services

import (
	"decide-backend/internal/models"

	"gorm.io/datatypes"
)

// Slugs of the two prompts that drive classification. Answers to any other
// prompt are recorded but do not affect the quadrant.
const (
	SlugUrgent    = "is_urgent"
	SlugImportant = "is_important"
)

// ClassificationInput holds the two answers the quadrant is derived from.
type ClassificationInput struct {
	Urgent    bool
	Important bool
}

// ClassificationInputFrom reads the classifying answers from a slug→answer
// map. A slug with no answer (for instance because the catalog does not
// define it) counts as false.
func ClassificationInputFrom(answers map[string]bool) ClassificationInput {
	return ClassificationInput{
		Urgent:    answers[SlugUrgent],
		Important: answers[SlugImportant],
	}
}

// Snapshot is stored next to the quadrant for auditing.
func (in ClassificationInput) Snapshot() datatypes.JSONMap {
	return datatypes.JSONMap{
		SlugUrgent:    in.Urgent,
		SlugImportant: in.Important,
	}
}

func Classify(in ClassificationInput) models.Quadrant {
	switch {
	case in.Urgent && in.Important:
		return models.QuadrantUrgentImportant
	case !in.Urgent && in.Important:
		return models.QuadrantNotUrgentImportant
	case in.Urgent && !in.Important:
		return models.QuadrantUrgentNotImportant
	default:
		return models.QuadrantNotUrgentNotImportant
	}
}

func ClassifyResponses(answers map[string]bool) models.Quadrant {
	return Classify(ClassificationInputFrom(answers))
}
