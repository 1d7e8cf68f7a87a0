package services

import (
	"context"
	"decide-backend/internal/models"
	"decide-backend/internal/testutil"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(decisions []models.Decision) []string {
	out := make([]string, 0, len(decisions))
	for _, d := range decisions {
		out = append(out, d.Title)
	}
	return out
}

func TestNormalizeSort(t *testing.T) {
	assert.Equal(t, SortQuadrant, NormalizeSort(""))
	assert.Equal(t, SortQuadrant, NormalizeSort("quadrant"))
	assert.Equal(t, SortDate, NormalizeSort("date"))
	assert.Equal(t, SortDate, NormalizeSort("title"))
}

func TestCreateDecision(t *testing.T) {
	testutil.SetupTestDB(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, "alice", models.RoleUser)

	decision, err := CreateDecision(ctx, user.ID, "  Buy milk ", "before friday")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", decision.Title)
	assert.Nil(t, decision.Quadrant)
	assert.False(t, decision.CreatedAt.IsZero())

	_, err = CreateDecision(ctx, user.ID, " ", "")
	assert.ErrorIs(t, err, models.BadParameterError)
}

func TestListDecisionsSorting(t *testing.T) {
	testutil.SetupTestDB(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, "alice", models.RoleUser)

	base := time.Now().Add(-time.Hour)
	testutil.CreateDecision(t, user.ID, "q4-old", base, testutil.QuadrantPtr(models.QuadrantNotUrgentNotImportant))
	testutil.CreateDecision(t, user.ID, "unset-old", base.Add(time.Minute), nil)
	testutil.CreateDecision(t, user.ID, "q1-old", base.Add(2*time.Minute), testutil.QuadrantPtr(models.QuadrantUrgentImportant))
	testutil.CreateDecision(t, user.ID, "q2", base.Add(3*time.Minute), testutil.QuadrantPtr(models.QuadrantNotUrgentImportant))
	testutil.CreateDecision(t, user.ID, "q1-new", base.Add(4*time.Minute), testutil.QuadrantPtr(models.QuadrantUrgentImportant))
	testutil.CreateDecision(t, user.ID, "unset-new", base.Add(5*time.Minute), nil)
	testutil.CreateDecision(t, user.ID, "q3", base.Add(6*time.Minute), testutil.QuadrantPtr(models.QuadrantUrgentNotImportant))

	page, err := ListDecisions(ctx, user.ID, "", 1)
	require.NoError(t, err)
	assert.Equal(t, SortQuadrant, page.CurrentSort)
	assert.Equal(t, []string{"q1-new", "q1-old", "q2", "q3", "q4-old", "unset-new", "unset-old"}, titles(page.Decisions))

	page, err = ListDecisions(ctx, user.ID, SortDate, 1)
	require.NoError(t, err)
	assert.Equal(t, SortDate, page.CurrentSort)
	assert.Equal(t, []string{"q3", "unset-new", "q1-new", "q2", "q1-old", "unset-old", "q4-old"}, titles(page.Decisions))

	page, err = ListDecisions(ctx, user.ID, "bogus", 1)
	require.NoError(t, err)
	assert.Equal(t, SortDate, page.CurrentSort)
}

func TestListDecisionsPagination(t *testing.T) {
	testutil.SetupTestDB(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, "alice", models.RoleUser)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < PageSize+5; i++ {
		testutil.CreateDecision(t, user.ID, fmt.Sprintf("d%02d", i), base.Add(time.Duration(i)*time.Second), nil)
	}

	page, err := ListDecisions(ctx, user.ID, SortDate, 1)
	require.NoError(t, err)
	assert.Len(t, page.Decisions, PageSize)
	assert.Equal(t, "d24", page.Decisions[0].Title)
	assert.Equal(t, int64(PageSize+5), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.True(t, page.Pagination.HasNext)

	page, err = ListDecisions(ctx, user.ID, SortDate, 2)
	require.NoError(t, err)
	assert.Len(t, page.Decisions, 5)
	assert.Equal(t, "d04", page.Decisions[0].Title)
	assert.False(t, page.Pagination.HasNext)
	assert.True(t, page.Pagination.HasPrev)

	_, err = ListDecisions(ctx, user.ID, SortDate, 3)
	assert.ErrorIs(t, err, models.ErrPageOutOfRange)

	_, err = ListDecisions(ctx, user.ID, SortDate, 0)
	assert.ErrorIs(t, err, models.ErrInvalidPage)
}

func TestListDecisionsEmptyFirstPage(t *testing.T) {
	testutil.SetupTestDB(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, "alice", models.RoleUser)

	page, err := ListDecisions(ctx, user.ID, "", 1)
	require.NoError(t, err)
	assert.Empty(t, page.Decisions)
	assert.Equal(t, 1, page.Pagination.TotalPages)

	_, err = ListDecisions(ctx, user.ID, "", 2)
	assert.ErrorIs(t, err, models.ErrPageOutOfRange)
}

func TestDecisionsAreIsolatedPerUser(t *testing.T) {
	testutil.SetupTestDB(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, "alice", models.RoleUser)
	bob := testutil.CreateUser(t, "bob", models.RoleUser)

	mine := testutil.CreateDecision(t, alice.ID, "alice's", time.Now(), testutil.QuadrantPtr(models.QuadrantUrgentImportant))
	testutil.CreateDecision(t, bob.ID, "bob's", time.Now(), nil)

	for _, sortKey := range []string{SortQuadrant, SortDate, "other"} {
		page, err := ListDecisions(ctx, alice.ID, sortKey, 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"alice's"}, titles(page.Decisions), sortKey)
	}

	_, err := GetDecision(ctx, bob.ID, mine.ID)
	assert.ErrorIs(t, err, models.ErrDecisionNotFound)

	detail, err := GetDecision(ctx, alice.ID, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, mine.ID, detail.Decision.ID)
	assert.Empty(t, detail.Responses)
}

func TestFindDecisions(t *testing.T) {
	testutil.SetupTestDB(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, "alice", models.RoleUser)
	bob := testutil.CreateUser(t, "bob", models.RoleUser)

	testutil.CreateDecision(t, alice.ID, "Buy milk", time.Now(), testutil.QuadrantPtr(models.QuadrantUrgentImportant))
	testutil.CreateDecision(t, alice.ID, "Read book", time.Now(), nil)
	testutil.CreateDecision(t, bob.ID, "Fix roof", time.Now(), testutil.QuadrantPtr(models.QuadrantUrgentImportant))

	decisions, total, err := FindDecisions(ctx, DecisionFilter{Quadrant: "Q1", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, decisions, 2)

	decisions, total, err = FindDecisions(ctx, DecisionFilter{Quadrant: QuadrantUnset, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Read book", decisions[0].Title)

	_, total, err = FindDecisions(ctx, DecisionFilter{UserID: bob.ID, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	decisions, total, err = FindDecisions(ctx, DecisionFilter{Search: "bob", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Fix roof", decisions[0].Title)

	_, _, err = FindDecisions(ctx, DecisionFilter{Quadrant: "Q7", Page: 1, Limit: 10})
	assert.ErrorIs(t, err, models.ErrInvalidQuadrant)

	_, err = GetDecisionByID(ctx, 9999)
	assert.ErrorIs(t, err, models.ErrDecisionNotFound)
}
