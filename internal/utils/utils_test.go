package utils

import (
	"bytes"
	"context"
	"decide-backend/internal/models"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type submitInput struct {
	PromptID *uint `json:"prompt_id" binding:"required"`
	Answer   *bool `json:"answer" binding:"required"`
}

func newTestContext(body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestBindAndValidate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		ok         bool
		wantFields []string
	}{
		{"valid", `{"prompt_id": 1, "answer": false}`, true, nil},
		{"missing answer", `{"prompt_id": 1}`, false, []string{"answer"}},
		{"missing both", `{}`, false, []string{"prompt_id", "answer"}},
		{"wrong type", `{"prompt_id": "one", "answer": true}`, false, []string{"prompt_id"}},
		{"not json", `prompt_id=1`, false, []string{"body"}},
		{"empty", ``, false, []string{"body"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(tt.body)
			var input submitInput

			assert.Equal(t, tt.ok, BindAndValidate(c, &input))
			if tt.ok {
				assert.Equal(t, uint(1), *input.PromptID)
				assert.False(t, *input.Answer)
				return
			}

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp struct {
				Data ValidationErrorData `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			var fields []string
			for _, e := range resp.Data.Errors {
				fields = append(fields, e.Field)
			}
			assert.ElementsMatch(t, tt.wantFields, fields)
		})
	}
}

func TestErrorStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ErrorStatus(models.ErrInvalidPage))
	assert.Equal(t, http.StatusUnauthorized, ErrorStatus(models.ErrInvalidCredentials))
	assert.Equal(t, http.StatusForbidden, ErrorStatus(models.ForbiddenError))
	assert.Equal(t, http.StatusNotFound, ErrorStatus(errors.Wrap(models.ErrDecisionNotFound, "start flow")))
	assert.Equal(t, http.StatusConflict, ErrorStatus(models.ErrDuplicateResponse))
	assert.Equal(t, http.StatusRequestTimeout, ErrorStatus(errors.Wrap(context.DeadlineExceeded, "record response")))
	assert.Equal(t, http.StatusInternalServerError, ErrorStatus(errors.New("disk full")))
}

func TestRespondErrorHidesInternalDetails(t *testing.T) {
	c, w := newTestContext("")
	RespondError(c, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Internal server error", resp.Message)
	assert.Len(t, c.Errors, 1)

	c, w = newTestContext("")
	RespondError(c, models.ErrPromptNotFound)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "prompt not found")
}

func TestPageMeta(t *testing.T) {
	meta := NewPageMeta(2, 20, 41)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	empty := NewPageMeta(1, 20, 0)
	assert.Equal(t, 1, empty.TotalPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)
}

func TestParsePage(t *testing.T) {
	for query, want := range map[string]int{"": 1, "?page=3": 3} {
		c, _ := newTestContext("")
		c.Request, _ = http.NewRequest(http.MethodGet, "/"+query, nil)
		page, err := ParsePage(c)
		assert.NoError(t, err)
		assert.Equal(t, want, page)
	}

	for _, query := range []string{"?page=0", "?page=-1", "?page=abc"} {
		c, _ := newTestContext("")
		c.Request, _ = http.NewRequest(http.MethodGet, "/"+query, nil)
		_, err := ParsePage(c)
		assert.ErrorIs(t, err, models.ErrInvalidPage)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	os.Setenv("JWT_SECRET", "test_secret")
	t.Setenv("TOKEN_TTL", "1h")

	token, err := GenerateToken(42, models.RoleAdmin)
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.ID)

	remaining, err := TokenExpiry(claims)
	require.NoError(t, err)
	assert.InDelta(t, time.Hour.Seconds(), remaining.Seconds(), 5)

	_, err = ValidateToken(token + "tampered")
	assert.ErrorIs(t, err, models.UnAuthorizedError)

	second, err := GenerateToken(42, models.RoleAdmin)
	require.NoError(t, err)
	assert.NotEqual(t, token, second)
}

func TestExtractToken(t *testing.T) {
	c, _ := newTestContext("")
	_, err := ExtractToken(c)
	assert.EqualError(t, err, "authorization header is required")

	c.Request.Header.Set("Authorization", "Token abc")
	_, err = ExtractToken(c)
	assert.EqualError(t, err, "bearer token not found")

	c.Request.Header.Set("Authorization", "Bearer abc")
	token, err := ExtractToken(c)
	assert.NoError(t, err)
	assert.Equal(t, "abc", token)
}
