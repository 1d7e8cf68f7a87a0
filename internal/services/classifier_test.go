package services

import (
	"decide-backend/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		urgent    bool
		important bool
		want      models.Quadrant
	}{
		{"urgent and important", true, true, models.QuadrantUrgentImportant},
		{"important only", false, true, models.QuadrantNotUrgentImportant},
		{"urgent only", true, false, models.QuadrantUrgentNotImportant},
		{"neither", false, false, models.QuadrantNotUrgentNotImportant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := ClassificationInput{Urgent: tt.urgent, Important: tt.important}
			assert.Equal(t, tt.want, Classify(in))

			answers := map[string]bool{SlugUrgent: tt.urgent, SlugImportant: tt.important, "is_fun": true}
			assert.Equal(t, tt.want, ClassifyResponses(answers))
		})
	}
}

func TestClassifyMissingAnswersCountAsNo(t *testing.T) {
	assert.Equal(t, models.QuadrantNotUrgentNotImportant, ClassifyResponses(nil))
	assert.Equal(t, models.QuadrantUrgentNotImportant, ClassifyResponses(map[string]bool{SlugUrgent: true}))
	assert.Equal(t, models.QuadrantNotUrgentImportant, ClassifyResponses(map[string]bool{SlugImportant: true}))
}

func TestClassificationSnapshot(t *testing.T) {
	snapshot := ClassificationInput{Urgent: true}.Snapshot()
	assert.Equal(t, true, snapshot[SlugUrgent])
	assert.Equal(t, false, snapshot[SlugImportant])
}
