package follow

import (
	"context"
	"errors"
	"testing"

	"cookbook-backend/domain"
	"cookbook-backend/entities"
	"cookbook-backend/internal/testutil"
	"cookbook-backend/pkg/database"
	"cookbook-backend/pkg/notification"
	"cookbook-backend/pkg/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gorm.DB, FollowService) {
	t.Helper()

	db := testutil.NewDB(t)
	svc := NewFollowService(
		NewFollowRepository(db),
		user.NewUserRepository(db),
		notification.NewNotificationService(notification.NewNotificationRepository(db)),
		database.NewTransactor(db),
	)
	return db, svc
}

func TestFollow_SelfAndUnknown(t *testing.T) {
	db, svc := setup(t)
	ctx := context.Background()
	a := testutil.CreateUser(t, db, "a@example.com", "A")

	assert.ErrorIs(t, svc.Follow(ctx, a.ID, a.ID), domain.ErrCannotFollowSelf)
	assert.ErrorIs(t, svc.Follow(ctx, a.ID, uuid.New()), domain.ErrUserNotFound)
	assert.Equal(t, int64(0), testutil.Count(t, db, &entities.UserFollow{}, "1 = 1"))
}

func TestFollow_TwiceKeepsOneRow(t *testing.T) {
	db, svc := setup(t)
	ctx := context.Background()
	a := testutil.CreateUser(t, db, "a@example.com", "A")
	b := testutil.CreateUser(t, db, "b@example.com", "B")

	require.NoError(t, svc.Follow(ctx, a.ID, b.ID))
	assert.ErrorIs(t, svc.Follow(ctx, a.ID, b.ID), domain.ErrAlreadyFollowing)
	assert.Equal(t, int64(1), testutil.Count(t, db, &entities.UserFollow{}, "follower_id = ? AND following_id = ?", a.ID, b.ID))

	stats, err := svc.Stats(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FollowStatsResponse{FollowersCount: 1, FollowingCount: 0}, stats)
	stats, err = svc.Stats(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FollowStatsResponse{FollowersCount: 0, FollowingCount: 1}, stats)

	assert.Equal(t, int64(1), testutil.Count(t, db, &entities.Notification{}, "user_id = ? AND type = ?", b.ID, entities.NotificationFollow))
}

func TestUnfollow(t *testing.T) {
	db, svc := setup(t)
	ctx := context.Background()
	a := testutil.CreateUser(t, db, "a@example.com", "A")
	b := testutil.CreateUser(t, db, "b@example.com", "B")

	assert.ErrorIs(t, svc.Unfollow(ctx, a.ID, b.ID), domain.ErrNotFollowing)

	require.NoError(t, svc.Follow(ctx, a.ID, b.ID))
	following, err := svc.IsFollowing(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, following)

	require.NoError(t, svc.Unfollow(ctx, a.ID, b.ID))
	following, err = svc.IsFollowing(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, following)

	stats, err := svc.Stats(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.FollowersCount)
	stats, err = svc.Stats(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.FollowingCount)
}

func TestFollowersAndFollowing(t *testing.T) {
	db, svc := setup(t)
	ctx := context.Background()
	a := testutil.CreateUser(t, db, "a@example.com", "A")
	b := testutil.CreateUser(t, db, "b@example.com", "B")
	c := testutil.CreateUser(t, db, "c@example.com", "C")

	require.NoError(t, svc.Follow(ctx, b.ID, a.ID))
	require.NoError(t, svc.Follow(ctx, c.ID, a.ID))
	require.NoError(t, svc.Follow(ctx, a.ID, c.ID))

	followers, err := svc.Followers(ctx, a.ID)
	require.NoError(t, err)
	names := []string{}
	for _, f := range followers {
		names = append(names, f.FullName)
	}
	assert.ElementsMatch(t, []string{"B", "C"}, names)

	following, err := svc.Following(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, c.ID.String(), following[0].ID)

	_, err = svc.Followers(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
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

func TestFollow_SucceedsWhenNotificationFails(t *testing.T) {
	for name, repo := range brokenNotificationCases() {
		t.Run(name, func(t *testing.T) {
			db := testutil.NewDB(t)
			svc := NewFollowService(NewFollowRepository(db), user.NewUserRepository(db),
				notification.NewNotificationService(repo), database.NewTransactor(db))
			ctx := context.Background()
			a := testutil.CreateUser(t, db, "a@example.com", "A")
			b := testutil.CreateUser(t, db, "b@example.com", "B")

			require.NoError(t, svc.Follow(ctx, a.ID, b.ID))
			stats, err := svc.Stats(ctx, b.ID)
			require.NoError(t, err)
			assert.Equal(t, domain.FollowStatsResponse{FollowersCount: 1, FollowingCount: 0}, stats)

			following, err := svc.IsFollowing(ctx, a.ID, b.ID)
			require.NoError(t, err)
			assert.True(t, following)
		})
	}
}
