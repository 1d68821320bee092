package rating

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

func setup(t *testing.T) (*gorm.DB, RatingService) {
	t.Helper()

	db := testutil.NewDB(t)
	svc := NewRatingService(
		NewRatingRepository(db),
		recipe.NewRecipeRepository(db),
		notification.NewNotificationService(notification.NewNotificationRepository(db)),
		database.NewTransactor(db),
	)
	return db, svc
}

func TestRate_UpsertKeepsSingleRow(t *testing.T) {
	db, svc := setup(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "a@example.com", "A")
	rater := testutil.CreateUser(t, db, "b@example.com", "B")
	r := testutil.CreateRecipe(t, db, owner, "Bún chả")

	resp, err := svc.Rate(ctx, rater.ID, r.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.RatingResponse{Rating: 5, AverageRating: 5, RatingsCount: 1}, resp)

	resp, err = svc.Rate(ctx, rater.ID, r.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, domain.RatingResponse{Rating: 3, AverageRating: 3, RatingsCount: 1}, resp)

	assert.Equal(t, int64(1), testutil.Count(t, db, &entities.RecipeRating{}, "recipe_id = ?", r.ID))
	stored := testutil.Reload(t, db, r.ID)
	assert.Equal(t, 1, stored.RatingsCount)
	assert.Equal(t, 3.0, stored.AverageRating)

	mine, err := svc.GetUserRating(ctx, rater.ID, r.ID)
	require.NoError(t, err)
	require.NotNil(t, mine.Rating)
	assert.Equal(t, 3, *mine.Rating)

	// the second rating is deduplicated while the first notice is unread
	assert.Equal(t, int64(1), testutil.Count(t, db, &entities.Notification{}, "type = ?", entities.NotificationRating))
}

func TestRate_AverageAcrossUsers(t *testing.T) {
	db, svc := setup(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "a@example.com", "A")
	r := testutil.CreateRecipe(t, db, owner, "Bún chả")

	for i, score := range []int{5, 4, 4} {
		u := testutil.CreateUser(t, db, string(rune('c'+i))+"@example.com", "U")
		_, err := svc.Rate(ctx, u.ID, r.ID, score)
		require.NoError(t, err)
	}

	stats, err := svc.Stats(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.33, stats.AverageRating)
	assert.Equal(t, 3, stats.RatingsCount)
	assert.Equal(t, map[int]int64{1: 0, 2: 0, 3: 0, 4: 2, 5: 1}, stats.Distribution)

	items, err := svc.ListRatings(ctx, r.ID)
	require.NoError(t, err)
	assert.Len(t, items, 3)
	assert.Equal(t, "U", items[0].UserName)
}

func TestRate_InvalidScore(t *testing.T) {
	db, svc := setup(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "a@example.com", "A")
	r := testutil.CreateRecipe(t, db, owner, "Bún chả")

	for _, score := range []int{0, 6, -1} {
		_, err := svc.Rate(ctx, owner.ID, r.ID, score)
		assert.ErrorIs(t, err, domain.ErrRatingScoreInvalid)
	}
	assert.Equal(t, int64(0), testutil.Count(t, db, &entities.RecipeRating{}, "1 = 1"))
}

func TestDeleteRating(t *testing.T) {
	db, svc := setup(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "a@example.com", "A")
	rater := testutil.CreateUser(t, db, "b@example.com", "B")
	r := testutil.CreateRecipe(t, db, owner, "Bún chả")

	_, err := svc.DeleteRating(ctx, rater.ID, r.ID)
	assert.ErrorIs(t, err, domain.ErrRatingNotFound)

	_, err = svc.Rate(ctx, rater.ID, r.ID, 4)
	require.NoError(t, err)
	_, err = svc.Rate(ctx, owner.ID, r.ID, 2)
	require.NoError(t, err)

	resp, err := svc.DeleteRating(ctx, rater.ID, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.RatingsCount)
	assert.Equal(t, 2.0, resp.AverageRating)

	resp, err = svc.DeleteRating(ctx, owner.ID, r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RatingResponse{}, resp)

	stored := testutil.Reload(t, db, r.ID)
	assert.Equal(t, 0, stored.RatingsCount)
	assert.Equal(t, 0.0, stored.AverageRating)

	mine, err := svc.GetUserRating(ctx, rater.ID, r.ID)
	require.NoError(t, err)
	assert.Nil(t, mine.Rating)
}

func TestRate_UnknownRecipe(t *testing.T) {
	db, svc := setup(t)
	ctx := context.Background()
	u := testutil.CreateUser(t, db, "a@example.com", "A")

	_, err := svc.Rate(ctx, u.ID, uuid.New(), 4)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
	_, err = svc.Stats(ctx, uuid.New())
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

func TestRate_SucceedsWhenNotificationFails(t *testing.T) {
	for name, repo := range brokenNotificationCases() {
		t.Run(name, func(t *testing.T) {
			db := testutil.NewDB(t)
			svc := NewRatingService(NewRatingRepository(db), recipe.NewRecipeRepository(db),
				notification.NewNotificationService(repo), database.NewTransactor(db))
			ctx := context.Background()
			owner := testutil.CreateUser(t, db, "a@example.com", "A")
			rater := testutil.CreateUser(t, db, "b@example.com", "B")
			r := testutil.CreateRecipe(t, db, owner, "Bún bò Huế")

			resp, err := svc.Rate(ctx, rater.ID, r.ID, 4)
			require.NoError(t, err)
			assert.Equal(t, domain.RatingResponse{Rating: 4, AverageRating: 4, RatingsCount: 1}, resp)

			stored := testutil.Reload(t, db, r.ID)
			assert.Equal(t, 1, stored.RatingsCount)
			assert.Equal(t, 4.0, stored.AverageRating)
		})
	}
}
