package api_test

import (
	"decide-backend/config"
	"decide-backend/internal/api"
	"decide-backend/internal/models"
	"decide-backend/internal/testutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gavv/httpexpect/v2"
)

func newServer(t *testing.T) *httpexpect.Expect {
	t.Helper()
	testutil.SetupTestConfig(t)
	testutil.SetupTestDB(t)
	testutil.SetupTestRedis(t)

	router := api.NewRouter(&config.Config{
		CORSOrigins:  []string{"http://localhost:5173"},
		MaxBodyBytes: 1024,
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return httpexpect.Default(t, server.URL)
}

func register(e *httpexpect.Expect, username string) string {
	return e.POST("/api/v1/auth/register").
		WithJSON(map[string]string{"username": username, "password": "secret123"}).
		Expect().
		Status(http.StatusCreated).
		JSON().Path("$.data.token").String().Raw()
}

func TestBuyMilkEndToEnd(t *testing.T) {
	e := newServer(t)

	admin := register(e, "admin")
	alice := register(e, "alice")

	for _, p := range []map[string]interface{}{
		{"slug": "is_urgent", "order": 1, "text": "Is it urgent?"},
		{"slug": "is_important", "order": 2, "text": "Is it important?"},
	} {
		e.POST("/api/v1/admin/prompts").
			WithHeader("Authorization", "Bearer "+admin).
			WithJSON(p).
			Expect().
			Status(http.StatusCreated)
	}

	created := e.POST("/api/v1/decisions").
		WithHeader("Authorization", "Bearer "+alice).
		WithJSON(map[string]string{"title": "Buy milk"}).
		Expect().
		Status(http.StatusCreated).
		JSON().Object()
	created.Path("$.data.first_prompt.slug").String().IsEqual("is_urgent")
	created.Path("$.data.quadrant").IsNull()
	decisionID := int(created.Path("$.data.id").Number().Raw())
	urgentID := int(created.Path("$.data.first_prompt.id").Number().Raw())

	next := e.POST("/api/v1/decisions/{id}/flow", decisionID).
		WithHeader("Authorization", "Bearer "+alice).
		WithJSON(map[string]interface{}{"prompt_id": urgentID, "answer": true}).
		Expect().
		Status(http.StatusOK).
		JSON().Object()
	next.Path("$.data.text").String().IsEqual("Is it important?")
	next.Path("$.data.state").String().IsEqual("awaiting_answers")
	importantID := int(next.Path("$.data.prompt_id").Number().Raw())

	e.POST("/api/v1/decisions/{id}/flow", decisionID).
		WithHeader("Authorization", "Bearer "+alice).
		WithJSON(map[string]interface{}{"prompt_id": importantID, "answer": true}).
		Expect().
		Status(http.StatusOK).
		JSON().Path("$.data.quadrant").String().IsEqual("Urgent & Important")

	e.GET("/api/v1/decisions/{id}", decisionID).
		WithHeader("Authorization", "Bearer "+alice).
		Expect().
		Status(http.StatusOK).
		JSON().Path("$.data.quadrant").String().IsEqual(string(models.QuadrantUrgentImportant))

	e.GET("/api/v1/decisions/{id}/flow/state", decisionID).
		WithHeader("Authorization", "Bearer "+alice).
		Expect().
		Status(http.StatusOK).
		JSON().Path("$.data.state").String().IsEqual("complete")

	// Answering again is a conflict and leaves the ledger untouched.
	e.POST("/api/v1/decisions/{id}/flow", decisionID).
		WithHeader("Authorization", "Bearer "+alice).
		WithJSON(map[string]interface{}{"prompt_id": importantID, "answer": false}).
		Expect().
		Status(http.StatusConflict)

	responses := e.GET("/api/v1/responses").
		WithHeader("Authorization", "Bearer "+alice).
		Expect().
		Status(http.StatusOK).
		JSON().Path("$.data.responses").Array()
	responses.Length().IsEqual(2)
	responses.Value(0).Object().Value("prompt_slug").String().IsEqual("is_important")

	e.GET("/api/v1/decisions").
		WithHeader("Authorization", "Bearer "+alice).
		Expect().
		Status(http.StatusOK).
		JSON().Path("$.data.current_sort").String().IsEqual("quadrant")

	e.GET("/api/v1/responses/export").
		WithHeader("Authorization", "Bearer "+alice).
		Expect().
		Status(http.StatusOK).
		ContentType("text/csv").
		Body().Contains("Buy milk")
}

func TestAuthorization(t *testing.T) {
	e := newServer(t)

	admin := register(e, "admin")
	bob := register(e, "bob")

	e.GET("/api/v1/decisions").Expect().Status(http.StatusUnauthorized)

	e.GET("/api/v1/admin/prompts").
		WithHeader("Authorization", "Bearer "+bob).
		Expect().
		Status(http.StatusForbidden)

	e.GET("/api/v1/admin/prompts").
		WithHeader("Authorization", "Bearer "+admin).
		Expect().
		Status(http.StatusOK)

	e.POST("/api/v1/auth/logout").
		WithHeader("Authorization", "Bearer "+bob).
		Expect().
		Status(http.StatusOK)

	e.GET("/api/v1/decisions").
		WithHeader("Authorization", "Bearer "+bob).
		Expect().
		Status(http.StatusUnauthorized).
		JSON().Path("$.message").String().IsEqual("Token has been revoked")
}

func TestDecisionsAreScopedToOwner(t *testing.T) {
	e := newServer(t)

	register(e, "admin")
	alice := register(e, "alice")
	bob := register(e, "bob")

	id := int(e.POST("/api/v1/decisions").
		WithHeader("Authorization", "Bearer "+alice).
		WithJSON(map[string]string{"title": "Private"}).
		Expect().
		Status(http.StatusCreated).
		JSON().Path("$.data.id").Number().Raw())

	e.GET("/api/v1/decisions/{id}", id).
		WithHeader("Authorization", "Bearer "+bob).
		Expect().
		Status(http.StatusNotFound)

	e.GET("/api/v1/decisions").
		WithHeader("Authorization", "Bearer "+bob).
		Expect().
		Status(http.StatusOK).
		JSON().Path("$.data.decisions").Array().IsEmpty()
}

func TestListingPageErrors(t *testing.T) {
	e := newServer(t)
	token := register(e, "alice")

	e.GET("/api/v1/decisions").WithQuery("page", "abc").
		WithHeader("Authorization", "Bearer "+token).
		Expect().
		Status(http.StatusBadRequest)

	e.GET("/api/v1/decisions").WithQuery("page", 5).
		WithHeader("Authorization", "Bearer "+token).
		Expect().
		Status(http.StatusNotFound)

	e.GET("/api/v1/responses").WithQuery("page", 0).
		WithHeader("Authorization", "Bearer "+token).
		Expect().
		Status(http.StatusBadRequest)
}

func TestHealthAndMetrics(t *testing.T) {
	e := newServer(t)

	e.GET("/healthz").Expect().Status(http.StatusOK).JSON().Object().Value("status").String().IsEqual("ok")
	e.GET("/metrics").Expect().Status(http.StatusOK).Body().Contains("go_goroutines")
}

func TestChangePassword(t *testing.T) {
	e := newServer(t)
	alice := register(e, "alice")

	e.PUT("/api/v1/auth/user/password").
		WithHeader("Authorization", "Bearer "+alice).
		WithJSON(map[string]string{"current_password": "wrong", "new_password": "brand-new"}).
		Expect().
		Status(http.StatusBadRequest)

	e.PUT("/api/v1/auth/user/password").
		WithHeader("Authorization", "Bearer "+alice).
		WithJSON(map[string]string{"current_password": "secret123", "new_password": "secret123"}).
		Expect().
		Status(http.StatusBadRequest)

	e.PUT("/api/v1/auth/user/password").
		WithHeader("Authorization", "Bearer "+alice).
		WithJSON(map[string]string{"current_password": "secret123", "new_password": "brand-new"}).
		Expect().
		Status(http.StatusOK)

	e.POST("/api/v1/auth/login").
		WithJSON(map[string]string{"username": "alice", "password": "secret123"}).
		Expect().
		Status(http.StatusUnauthorized)

	e.POST("/api/v1/auth/login").
		WithJSON(map[string]string{"username": "alice", "password": "brand-new"}).
		Expect().
		Status(http.StatusOK).
		JSON().Path("$.data.token").String().NotEmpty()
}
