package prompt_test

import (
	"bytes"
	"decide-backend/internal/api/v1/admin/prompt"
	"decide-backend/internal/database"
	"decide-backend/internal/models"
	"decide-backend/internal/testutil"
	"decide-backend/internal/utils"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(handler gin.HandlerFunc, method, id, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(method, "/api/v1/admin/prompts/"+id, bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	if id != "" {
		c.Params = gin.Params{{Key: "id", Value: id}}
	}

	handler(c)
	return w
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Message
}

func TestCreatePrompt(t *testing.T) {
	testutil.SetupTestConfig(t)
	testutil.SetupTestDB(t)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Valid Prompt",
			body:           `{"slug": "is_urgent", "order": 1, "text": "Is it urgent?"}`,
			expectedStatus: http.StatusCreated,
			expectedBody:   "Prompt created successfully",
		},
		{
			name:           "Derived Slug",
			body:           `{"order": 2, "text": "Is it important?"}`,
			expectedStatus: http.StatusCreated,
			expectedBody:   "Prompt created successfully",
		},
		{
			name:           "Duplicate Slug",
			body:           `{"slug": "is_urgent", "order": 3, "text": "Urgent again?"}`,
			expectedStatus: http.StatusConflict,
			expectedBody:   "slug",
		},
		{
			name:           "Malformed Slug",
			body:           `{"slug": "Not A Slug", "order": 3, "text": "Anything?"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid prompt slug",
		},
		{
			name:           "Missing Order",
			body:           `{"text": "No order?"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid request parameters",
		},
		{
			name:           "Missing Text",
			body:           `{"order": 4}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid request parameters",
		},
		{
			name:           "Not JSON",
			body:           `order=4`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid request parameters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(prompt.CreatePrompt, http.MethodPost, "", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, decodeMessage(t, w), tt.expectedBody)
		})
	}

	var slugs []string
	require.NoError(t, database.DB.Model(&models.Prompt{}).Order("sort_order asc").Pluck("slug", &slugs).Error)
	assert.Equal(t, []string{"is_urgent", "is-it-important"}, slugs)
}

func TestBatchCreatePrompts(t *testing.T) {
	testutil.SetupTestConfig(t)
	testutil.SetupTestDB(t)

	w := serve(prompt.BatchCreatePrompts, http.MethodPost, "", `{"prompts": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// One bad entry rolls back the whole batch.
	w = serve(prompt.BatchCreatePrompts, http.MethodPost, "", `{"prompts": [
		{"slug": "is_urgent", "order": 1, "text": "Is it urgent?"},
		{"slug": "Bad Slug", "order": 2, "text": "Is it important?"}
	]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	database.DB.Model(&models.Prompt{}).Count(&count)
	assert.Equal(t, int64(0), count)

	w = serve(prompt.BatchCreatePrompts, http.MethodPost, "", `{"prompts": [
		{"slug": "is_urgent", "order": 1, "text": "Is it urgent?"},
		{"slug": "is_important", "order": 2, "text": "Is it important?"}
	]}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data []models.Prompt `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "is_important", resp.Data[1].Slug)
}

func TestUpdatePrompt(t *testing.T) {
	testutil.SetupTestConfig(t)
	testutil.SetupTestDB(t)

	urgent := testutil.CreatePrompt(t, "is_urgent", 1)
	testutil.CreatePrompt(t, "is_important", 2)
	id := fmt.Sprint(urgent.ID)

	tests := []struct {
		name           string
		id             string
		body           string
		expectedStatus int
	}{
		{name: "Change Text", id: id, body: `{"text": "Does it have a deadline?"}`, expectedStatus: http.StatusOK},
		{name: "Change Order", id: id, body: `{"order": 5}`, expectedStatus: http.StatusOK},
		{name: "Taken Slug", id: id, body: `{"slug": "is_important"}`, expectedStatus: http.StatusConflict},
		{name: "Malformed Slug", id: id, body: `{"slug": "Is Urgent"}`, expectedStatus: http.StatusBadRequest},
		{name: "Blank Text", id: id, body: `{"text": "  "}`, expectedStatus: http.StatusBadRequest},
		{name: "Invalid ID", id: "abc", body: `{"order": 1}`, expectedStatus: http.StatusBadRequest},
		{name: "Unknown Prompt", id: "9999", body: `{"order": 1}`, expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(prompt.UpdatePrompt, http.MethodPut, tt.id, tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}

	var stored models.Prompt
	require.NoError(t, database.DB.First(&stored, urgent.ID).Error)
	assert.Equal(t, "is_urgent", stored.Slug)
	assert.Equal(t, uint(5), stored.Order)
	assert.Equal(t, "Does it have a deadline?", stored.Text)
}

func TestDeletePrompt(t *testing.T) {
	testutil.SetupTestConfig(t)
	testutil.SetupTestDB(t)

	user := testutil.CreateUser(t, "alice", models.RoleUser)
	urgent := testutil.CreatePrompt(t, "is_urgent", 1)
	important := testutil.CreatePrompt(t, "is_important", 2)
	decision := testutil.CreateDecision(t, user.ID, "Buy milk", time.Now(), nil)
	require.NoError(t, database.DB.Create(&models.DecisionResponse{
		DecisionID: decision.ID,
		PromptID:   urgent.ID,
		Answer:     true,
	}).Error)

	// The decision had only the removed prompt left to answer.
	w := serve(prompt.DeletePrompt, http.MethodDelete, fmt.Sprint(important.ID), "")
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.Decision
	require.NoError(t, database.DB.First(&stored, decision.ID).Error)
	require.NotNil(t, stored.Quadrant)
	assert.Equal(t, models.QuadrantUrgentNotImportant, *stored.Quadrant)

	w = serve(prompt.DeletePrompt, http.MethodDelete, fmt.Sprint(important.ID), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(prompt.DeletePrompt, http.MethodDelete, "0", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListPrompts(t *testing.T) {
	testutil.SetupTestConfig(t)
	testutil.SetupTestDB(t)

	testutil.CreatePrompt(t, "is_important", 2)
	testutil.CreatePrompt(t, "is_urgent", 1)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/admin/prompts?search=urgent", nil)
	prompt.ListPrompts(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data prompt.PromptListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Data.Total)
	require.Len(t, resp.Data.Prompts, 1)
	assert.Equal(t, "is_urgent", resp.Data.Prompts[0].Slug)
}
