package like

import (
	"context"
	"errors"
	"sync"
	"testing"

	"cookbook-backend/domain"
	"cookbook-backend/entities"
	"cookbook-backend/internal/testutil"
	"cookbook-backend/pkg/database"
	"cookbook-backend/pkg/history"
	"cookbook-backend/pkg/notification"
	"cookbook-backend/pkg/recipe"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	likes   LikeService
	recipes recipe.RecipeService
}

func setup(t *testing.T) fixture {
	t.Helper()

	db := testutil.NewDB(t)
	transactor := database.NewTransactor(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	notificationService := notification.NewNotificationService(notification.NewNotificationRepository(db))
	historyService := history.NewHistoryService(history.NewHistoryRepository(db))

	return fixture{
		db:      db,
		likes:   NewLikeService(NewLikeRepository(db), recipeRepository, notificationService, transactor),
		recipes: recipe.NewRecipeService(recipeRepository, historyService, transactor),
	}
}

func TestPhoBoScenario(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	a := testutil.CreateUser(t, f.db, "a@example.com", "A")
	b := testutil.CreateUser(t, f.db, "b@example.com", "B")

	created, err := f.recipes.CreateRecipe(ctx, a.ID, domain.RecipeRequest{Title: "Phở bò", Servings: 4})
	require.NoError(t, err)
	recipeID := uuid.MustParse(created.ID)

	liked, err := f.likes.Like(ctx, b.ID, recipeID)
	require.NoError(t, err)
	assert.True(t, liked)

	asB, err := f.recipes.GetRecipeByID(ctx, recipeID, &b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, asB.LikesCount)
	assert.True(t, asB.IsLikedByCurrentUser)

	anon, err := f.recipes.GetRecipeByID(ctx, recipeID, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, anon.LikesCount)
	assert.False(t, anon.IsLikedByCurrentUser)

	unliked, err := f.likes.Unlike(ctx, b.ID, recipeID)
	require.NoError(t, err)
	assert.True(t, unliked)
	assert.Equal(t, 0, testutil.Reload(t, f.db, recipeID).LikesCount)

	assert.Equal(t, int64(1), testutil.Count(t, f.db, &entities.Notification{}, "user_id = ? AND type = ?", a.ID, entities.NotificationLike))
}

func TestLike_IdempotentAndCounterMatchesRows(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, f.db, "a@example.com", "A")
	fan := testutil.CreateUser(t, f.db, "b@example.com", "B")
	r := testutil.CreateRecipe(t, f.db, owner, "Soup")

	ops := []func() (bool, error){
		func() (bool, error) { return f.likes.Like(ctx, fan.ID, r.ID) },
		func() (bool, error) { return f.likes.Like(ctx, fan.ID, r.ID) },
		func() (bool, error) { return f.likes.Toggle(ctx, fan.ID, r.ID) },
		func() (bool, error) { return f.likes.Unlike(ctx, fan.ID, r.ID) },
		func() (bool, error) { return f.likes.Toggle(ctx, fan.ID, r.ID) },
		func() (bool, error) { return f.likes.Like(ctx, owner.ID, r.ID) },
	}
	want := []bool{true, false, false, false, true, true}

	for i, op := range ops {
		got, err := op()
		require.NoError(t, err)
		assert.Equal(t, want[i], got, "op %d", i)

		rows := testutil.Count(t, f.db, &entities.RecipeLike{}, "recipe_id = ?", r.ID)
		assert.Equal(t, int(rows), testutil.Reload(t, f.db, r.ID).LikesCount, "op %d", i)
	}

	status, err := f.likes.Status(ctx, fan.ID, r.ID)
	require.NoError(t, err)
	assert.True(t, status.Liked)
	assert.Equal(t, 2, status.LikesCount)

	assert.Equal(t, int64(0), testutil.Count(t, f.db, &entities.Notification{}, "actor_id = ?", owner.ID), "owner liking own recipe is not notified")
}

func TestUnlike_NeverNegative(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, f.db, "a@example.com", "A")
	fan := testutil.CreateUser(t, f.db, "b@example.com", "B")
	r := testutil.CreateRecipe(t, f.db, owner, "Soup")

	removed, err := f.likes.Unlike(ctx, fan.ID, r.ID)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 0, testutil.Reload(t, f.db, r.ID).LikesCount)
}

func TestLike_UnknownRecipe(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	fan := testutil.CreateUser(t, f.db, "b@example.com", "B")

	_, err := f.likes.Like(ctx, fan.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
	_, err = f.likes.Status(ctx, fan.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

// The sqlite pool holds one connection, so these calls serialize. The
// unique-index race itself only shows up against postgres.
func TestLike_RepeatedFromGoroutinesKeepOneRow(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, f.db, "a@example.com", "A")
	fan := testutil.CreateUser(t, f.db, "b@example.com", "B")
	r := testutil.CreateRecipe(t, f.db, owner, "Soup")

	var wg sync.WaitGroup
	results := make([]bool, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			added, err := f.likes.Like(ctx, fan.ID, r.ID)
			assert.NoError(t, err)
			results[i] = added
		}(i)
	}
	wg.Wait()

	added := 0
	for _, ok := range results {
		if ok {
			added++
		}
	}
	assert.Equal(t, 1, added)
	assert.Equal(t, int64(1), testutil.Count(t, f.db, &entities.RecipeLike{}, "recipe_id = ?", r.ID))
	assert.Equal(t, 1, testutil.Reload(t, f.db, r.ID).LikesCount)
}

func TestLike_ExistingRowIsNotCountedTwice(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, f.db, "a@example.com", "A")
	fan := testutil.CreateUser(t, f.db, "b@example.com", "B")
	r := testutil.CreateRecipe(t, f.db, owner, "Soup")

	require.NoError(t, f.db.Create(&entities.RecipeLike{UserID: fan.ID, RecipeID: r.ID}).Error)

	added, err := f.likes.Like(ctx, fan.ID, r.ID)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, int64(1), testutil.Count(t, f.db, &entities.RecipeLike{}, "recipe_id = ?", r.ID))
	assert.Equal(t, 0, testutil.Reload(t, f.db, r.ID).LikesCount)
	assert.Equal(t, int64(0), testutil.Count(t, f.db, &entities.Notification{}, "user_id = ?", owner.ID))
}

func TestLikedRecipeIDs(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, f.db, "a@example.com", "A")
	fan := testutil.CreateUser(t, f.db, "b@example.com", "B")
	r := testutil.CreateRecipe(t, f.db, owner, "Soup")

	_, err := f.likes.Like(ctx, fan.ID, r.ID)
	require.NoError(t, err)

	ids, err := f.likes.LikedRecipeIDs(ctx, fan.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{r.ID.String()}, ids)
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

func TestLike_SucceedsWhenNotificationFails(t *testing.T) {
	for name, repo := range brokenNotificationCases() {
		t.Run(name, func(t *testing.T) {
			db := testutil.NewDB(t)
			svc := NewLikeService(NewLikeRepository(db), recipe.NewRecipeRepository(db),
				notification.NewNotificationService(repo), database.NewTransactor(db))
			ctx := context.Background()
			owner := testutil.CreateUser(t, db, "a@example.com", "A")
			fan := testutil.CreateUser(t, db, "b@example.com", "B")
			r := testutil.CreateRecipe(t, db, owner, "Bánh xèo")

			liked, err := svc.Like(ctx, fan.ID, r.ID)
			require.NoError(t, err)
			assert.True(t, liked)
			assert.Equal(t, 1, testutil.Reload(t, db, r.ID).LikesCount)
			assert.Equal(t, int64(1), testutil.Count(t, db, &entities.RecipeLike{}, "recipe_id = ?", r.ID))
		})
	}
}
