package history

import (
	"context"
	"testing"
	"time"

	"cookbook-backend/domain"
	"cookbook-backend/entities"
	"cookbook-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// steppingClock returns a clock that advances one second per call.
func steppingClock() func() time.Time {
	t := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newTestService(t *testing.T) (*gorm.DB, *historyService) {
	t.Helper()

	db := testutil.NewDB(t)
	svc := NewHistoryService(NewHistoryRepository(db)).(*historyService)
	svc.now = steppingClock()
	return db, svc
}

func TestSaveSearch_TrimsAndRejectsBlank(t *testing.T) {
	db, svc := newTestService(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "a@example.com", "A")

	require.NoError(t, svc.SaveSearch(ctx, user.ID, "  phở  "))
	assert.ErrorIs(t, svc.SaveSearch(ctx, user.ID, "   "), domain.ErrSearchQueryBlank)

	items, err := svc.AllSearches(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "phở", items[0].Query)
}

func TestRecentSearches_DistinctByLatestUse(t *testing.T) {
	db, svc := newTestService(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "a@example.com", "A")
	other := testutil.CreateUser(t, db, "b@example.com", "B")

	for _, q := range []string{"pho", "ramen", "pho", "curry"} {
		require.NoError(t, svc.SaveSearch(ctx, user.ID, q))
	}
	require.NoError(t, svc.SaveSearch(ctx, other.ID, "tacos"))

	queries, err := svc.RecentSearches(ctx, user.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"curry", "pho", "ramen"}, queries)

	limited, err := svc.RecentSearches(ctx, user.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"curry", "pho"}, limited)

	count, err := svc.CountSearches(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestDeleteSearchQueryAndClear(t *testing.T) {
	db, svc := newTestService(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "a@example.com", "A")

	for _, q := range []string{"pho", "ramen", "pho"} {
		require.NoError(t, svc.SaveSearch(ctx, user.ID, q))
	}

	require.NoError(t, svc.DeleteSearchQuery(ctx, user.ID, "pho"))
	queries, err := svc.RecentSearches(ctx, user.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"ramen"}, queries)

	require.NoError(t, svc.ClearSearches(ctx, user.ID))
	queries, err = svc.RecentSearches(ctx, user.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, queries)
}

func TestRecentlyViewed_DedupByMostRecent(t *testing.T) {
	db, svc := newTestService(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "owner@example.com", "Owner")
	viewer := testutil.CreateUser(t, db, "viewer@example.com", "Viewer")
	first := testutil.CreateRecipe(t, db, owner, "First")
	second := testutil.CreateRecipe(t, db, owner, "Second")

	require.NoError(t, svc.RecordView(ctx, viewer.ID, first.ID))
	require.NoError(t, svc.RecordView(ctx, viewer.ID, second.ID))
	require.NoError(t, svc.RecordView(ctx, viewer.ID, first.ID))

	assert.Equal(t, int64(3), testutil.Count(t, db, &entities.RecipeViewHistory{}, "user_id = ?", viewer.ID), "views are append-only")

	ids, err := svc.RecentlyViewedIDs(ctx, viewer.ID, 10)
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.Equal(t, first.ID, ids[0])
	assert.Equal(t, second.ID, ids[1])

	require.NoError(t, svc.RemoveView(ctx, viewer.ID, first.ID))
	ids, err = svc.RecentlyViewedIDs(ctx, viewer.ID, 10)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, second.ID, ids[0])

	require.NoError(t, svc.ClearViews(ctx, viewer.ID))
	ids, err = svc.RecentlyViewedIDs(ctx, viewer.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
