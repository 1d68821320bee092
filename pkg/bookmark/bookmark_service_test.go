package bookmark

import (
	"context"
	"errors"
	"testing"

	"cookbook-backend/domain"
	"cookbook-backend/entities"
	"cookbook-backend/internal/testutil"
	"cookbook-backend/pkg/database"
	"cookbook-backend/pkg/notification"
	"cookbook-backend/pkg/recipe"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gorm.DB, BookmarkService) {
	t.Helper()

	db := testutil.NewDB(t)
	svc := NewBookmarkService(
		NewBookmarkRepository(db),
		recipe.NewRecipeRepository(db),
		notification.NewNotificationService(notification.NewNotificationRepository(db)),
		database.NewTransactor(db),
	)
	return db, svc
}

func TestBookmarkLifecycle(t *testing.T) {
	db, svc := setup(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "a@example.com", "A")
	fan := testutil.CreateUser(t, db, "b@example.com", "B")
	r := testutil.CreateRecipe(t, db, owner, "Gỏi cuốn")

	added, err := svc.Bookmark(ctx, fan.ID, r.ID)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = svc.Bookmark(ctx, fan.ID, r.ID)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, 1, testutil.Reload(t, db, r.ID).BookmarksCount)

	status, err := svc.Status(ctx, fan.ID, r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookmarkResponse{Bookmarked: true, BookmarksCount: 1}, status)

	ids, err := svc.BookmarkedRecipeIDs(ctx, fan.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{r.ID.String()}, ids)

	state, err := svc.Toggle(ctx, fan.ID, r.ID)
	require.NoError(t, err)
	assert.False(t, state)
	assert.Equal(t, 0, testutil.Reload(t, db, r.ID).BookmarksCount)

	removed, err := svc.RemoveBookmark(ctx, fan.ID, r.ID)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 0, testutil.Reload(t, db, r.ID).BookmarksCount)

	assert.Equal(t, int64(1), testutil.Count(t, db, &entities.Notification{}, "user_id = ? AND type = ?", owner.ID, entities.NotificationBookmark))
}

func TestBookmark_OwnRecipeNotNotified(t *testing.T) {
	db, svc := setup(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "a@example.com", "A")
	r := testutil.CreateRecipe(t, db, owner, "Gỏi cuốn")

	added, err := svc.Bookmark(ctx, owner.ID, r.ID)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, int64(0), testutil.Count(t, db, &entities.Notification{}, "1 = 1"))
}

func TestBookmark_UnknownRecipe(t *testing.T) {
	db, svc := setup(t)
	ctx := context.Background()
	fan := testutil.CreateUser(t, db, "b@example.com", "B")

	_, err := svc.Bookmark(ctx, fan.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
	_, err = svc.RemoveBookmark(ctx, fan.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

// brokenNotifications fails the writes the notification service makes.
type brokenNotifications struct {
	notification.NotificationRepository
	dupErr    error
	createErr error
}

func (b brokenNotifications) HasUnreadDuplicate(context.Context, uuid.UUID, entities.NotificationType, uuid.UUID, *uuid.UUID) (bool, error) {
	return false, b.dupErr
}

func (b brokenNotifications) CreateNotification(context.Context, *entities.Notification) error {
	return b.createErr
}

func brokenNotificationCases() map[string]brokenNotifications {
	return map[string]brokenNotifications{
		"duplicate check fails": {dupErr: errors.New("notifications table unavailable")},
		"insert fails":          {createErr: errors.New("notifications table unavailable")},
	}
}

func TestBookmark_SucceedsWhenNotificationFails(t *testing.T) {
	for name, repo := range brokenNotificationCases() {
		t.Run(name, func(t *testing.T) {
			db := testutil.NewDB(t)
			svc := NewBookmarkService(NewBookmarkRepository(db), recipe.NewRecipeRepository(db),
				notification.NewNotificationService(repo), database.NewTransactor(db))
			ctx := context.Background()
			owner := testutil.CreateUser(t, db, "a@example.com", "A")
			fan := testutil.CreateUser(t, db, "b@example.com", "B")
			r := testutil.CreateRecipe(t, db, owner, "Chè ba màu")

			added, err := svc.Bookmark(ctx, fan.ID, r.ID)
			require.NoError(t, err)
			assert.True(t, added)
			assert.Equal(t, 1, testutil.Reload(t, db, r.ID).BookmarksCount)
		})
	}
}
