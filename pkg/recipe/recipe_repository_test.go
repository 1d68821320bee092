package recipe

import (
	"context"
	"testing"

	"cookbook-backend/entities"
	"cookbook-backend/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecrementCounter_FloorsAtZero(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "a@example.com", "A")
	recipe := testutil.CreateRecipe(t, db, owner, "Soup")

	require.NoError(t, repo.IncrementCounter(ctx, recipe.ID, entities.ColumnLikesCount))
	require.NoError(t, repo.DecrementCounter(ctx, recipe.ID, entities.ColumnLikesCount))
	require.NoError(t, repo.DecrementCounter(ctx, recipe.ID, entities.ColumnLikesCount))

	assert.Equal(t, 0, testutil.Reload(t, db, recipe.ID).LikesCount)
	assert.Error(t, repo.IncrementCounter(ctx, recipe.ID, "title"))
}

func TestRecountCounters(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "a@example.com", "A")
	fan := testutil.CreateUser(t, db, "b@example.com", "B")
	recipe := testutil.CreateRecipe(t, db, owner, "Soup")

	require.NoError(t, db.Create(&entities.RecipeLike{UserID: fan.ID, RecipeID: recipe.ID}).Error)
	require.NoError(t, db.Create(&entities.RecipeRating{UserID: fan.ID, RecipeID: recipe.ID, Score: 4}).Error)
	require.NoError(t, db.Create(&entities.RecipeRating{UserID: owner.ID, RecipeID: recipe.ID, Score: 5}).Error)
	root := &entities.RecipeComment{UserID: fan.ID, RecipeID: recipe.ID, Comment: "Yum"}
	require.NoError(t, db.Create(root).Error)
	require.NoError(t, db.Create(&entities.RecipeComment{UserID: owner.ID, RecipeID: recipe.ID, Comment: "Ty", ParentCommentID: &root.ID}).Error)
	require.NoError(t, db.Model(&entities.Recipe{}).Where("id = ?", recipe.ID).UpdateColumn("bookmarks_count", 7).Error)

	require.NoError(t, repo.RecountCounters(ctx, []uuid.UUID{recipe.ID}))

	got := testutil.Reload(t, db, recipe.ID)
	assert.Equal(t, 1, got.LikesCount)
	assert.Equal(t, 0, got.BookmarksCount)
	assert.Equal(t, 2, got.RatingsCount)
	assert.InDelta(t, 4.5, got.AverageRating, 0.001)
	assert.Equal(t, 1, got.CommentsCount)
}

func TestRefreshRatingStats_RoundsAverage(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()
	a := testutil.CreateUser(t, db, "a@example.com", "A")
	b := testutil.CreateUser(t, db, "b@example.com", "B")
	c := testutil.CreateUser(t, db, "c@example.com", "C")
	recipe := testutil.CreateRecipe(t, db, a, "Soup")

	for user, score := range map[*entities.User]int{a: 5, b: 4, c: 4} {
		require.NoError(t, db.Create(&entities.RecipeRating{UserID: user.ID, RecipeID: recipe.ID, Score: score}).Error)
	}

	count, avg, err := repo.RefreshRatingStats(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, 4.33, avg)
	assert.Equal(t, 4.33, testutil.Reload(t, db, recipe.ID).AverageRating)
}
