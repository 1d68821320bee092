package recipe

import (
	"context"
	"cookbook-backend/domain"
	"cookbook-backend/entities"
	"cookbook-backend/pkg/database"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var counterColumns = map[string]bool{
	entities.ColumnLikesCount:     true,
	entities.ColumnBookmarksCount: true,
	entities.ColumnRatingsCount:   true,
	entities.ColumnCommentsCount:  true,
}

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		UpdateRecipe(ctx context.Context, id uuid.UUID, fields map[string]any) error
		ReplaceChildren(ctx context.Context, recipeID uuid.UUID, ingredients []entities.Ingredient, steps []entities.RecipeStep) error
		DeleteRecipe(ctx context.Context, id uuid.UUID) error

		GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error)
		GetRecipeDetail(ctx context.Context, id uuid.UUID) (*entities.Recipe, error)
		GetRecipesByIDs(ctx context.Context, ids []uuid.UUID) ([]entities.Recipe, error)
		GetRecipes(ctx context.Context, page domain.PaginationRequest) ([]entities.Recipe, int64, error)
		GetRecipesByOwner(ctx context.Context, ownerID uuid.UUID) ([]entities.Recipe, error)
		SearchByTitle(ctx context.Context, text string) ([]entities.Recipe, error)
		GetFollowingFeed(ctx context.Context, followerID uuid.UUID, page domain.PaginationRequest) ([]entities.Recipe, int64, error)
		FilterByIngredients(ctx context.Context, include, exclude []string) ([]entities.Recipe, error)
		GetLikedRecipes(ctx context.Context, userID uuid.UUID, page domain.PaginationRequest) ([]entities.Recipe, int64, error)
		GetBookmarkedRecipes(ctx context.Context, userID uuid.UUID, page domain.PaginationRequest) ([]entities.Recipe, int64, error)
		GetViewerState(ctx context.Context, viewerID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]ViewerState, error)

		OwnerExists(ctx context.Context, ownerID uuid.UUID) (bool, error)
		ListIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error)
		EngagedRecipeIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)

		IncrementCounter(ctx context.Context, id uuid.UUID, column string) error
		DecrementCounter(ctx context.Context, id uuid.UUID, column string) error
		RefreshRatingStats(ctx context.Context, id uuid.UUID) (int, float64, error)
		RecountCounters(ctx context.Context, ids []uuid.UUID) error
	}

	// ViewerState is what one viewer has done to one recipe.
	ViewerState struct {
		Liked      bool
		Bookmarked bool
		Rating     *int
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func withAggregate(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_number asc")
		}).
		Preload("Steps.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_number asc")
		})
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return database.Conn(ctx, r.db).Omit(clause.Associations).Create(recipe).Error
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	res := database.Conn(ctx, r.db).Model(&entities.Recipe{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReplaceChildren drops every ingredient, step and step image of the recipe
// and inserts the given sets. Child ids are not preserved.
func (r *recipeRepository) ReplaceChildren(ctx context.Context, recipeID uuid.UUID, ingredients []entities.Ingredient, steps []entities.RecipeStep) error {
	db := database.Conn(ctx, r.db)

	stepIDs := db.Model(&entities.RecipeStep{}).Select("id").Where("recipe_id = ?", recipeID)
	if err := db.Where("step_id IN (?)", stepIDs).Delete(&entities.StepImage{}).Error; err != nil {
		return err
	}
	if err := db.Where("recipe_id = ?", recipeID).Delete(&entities.RecipeStep{}).Error; err != nil {
		return err
	}
	if err := db.Where("recipe_id = ?", recipeID).Delete(&entities.Ingredient{}).Error; err != nil {
		return err
	}

	for i := range ingredients {
		ingredients[i].RecipeID = recipeID
		ingredients[i].Position = i
	}
	if len(ingredients) > 0 {
		if err := db.Create(&ingredients).Error; err != nil {
			return err
		}
	}

	for i := range steps {
		steps[i].RecipeID = recipeID
		images := steps[i].Images
		if err := db.Omit(clause.Associations).Create(&steps[i]).Error; err != nil {
			return err
		}
		for j := range images {
			images[j].StepID = steps[i].ID
		}
		if len(images) > 0 {
			if err := db.Create(&images).Error; err != nil {
				return err
			}
		}
		steps[i].Images = images
	}
	return nil
}

// DeleteRecipe removes the recipe with its children and every row that
// references it. The foreign keys cascade as well; the explicit deletes keep
// the behaviour identical on databases that do not enforce them.
func (r *recipeRepository) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	db := database.Conn(ctx, r.db)

	stepIDs := db.Model(&entities.RecipeStep{}).Select("id").Where("recipe_id = ?", id)
	if err := db.Where("step_id IN (?)", stepIDs).Delete(&entities.StepImage{}).Error; err != nil {
		return err
	}
	for _, model := range []any{
		&entities.RecipeStep{},
		&entities.Ingredient{},
		&entities.RecipeLike{},
		&entities.RecipeBookmark{},
		&entities.RecipeRating{},
		&entities.RecipeComment{},
		&entities.RecipeViewHistory{},
		&entities.Notification{},
	} {
		if err := db.Where("recipe_id = ?", id).Delete(model).Error; err != nil {
			return err
		}
	}

	res := db.Where("id = ?", id).Delete(&entities.Recipe{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := database.Conn(ctx, r.db).Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipeDetail(ctx context.Context, id uuid.UUID) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := withAggregate(database.Conn(ctx, r.db)).Where("recipes.id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipesByIDs(ctx context.Context, ids []uuid.UUID) ([]entities.Recipe, error) {
	var recipes []entities.Recipe
	if len(ids) == 0 {
		return recipes, nil
	}
	err := withAggregate(database.Conn(ctx, r.db)).Where("recipes.id IN ?", ids).Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepository) GetRecipes(ctx context.Context, page domain.PaginationRequest) ([]entities.Recipe, int64, error) {
	var recipes []entities.Recipe
	var count int64

	if err := database.Conn(ctx, r.db).Model(&entities.Recipe{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := withAggregate(database.Conn(ctx, r.db)).
		Offset(page.Offset()).
		Limit(page.Limit).
		Order("recipes.created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) GetRecipesByOwner(ctx context.Context, ownerID uuid.UUID) ([]entities.Recipe, error) {
	var recipes []entities.Recipe
	err := withAggregate(database.Conn(ctx, r.db)).
		Where("recipes.user_id = ?", ownerID).
		Order("recipes.created_at desc").
		Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepository) SearchByTitle(ctx context.Context, text string) ([]entities.Recipe, error) {
	var recipes []entities.Recipe
	pattern := "%" + strings.ToLower(strings.TrimSpace(text)) + "%"
	err := withAggregate(database.Conn(ctx, r.db)).
		Where("LOWER(recipes.title) LIKE ?", pattern).
		Order("recipes.created_at desc").
		Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepository) GetFollowingFeed(ctx context.Context, followerID uuid.UUID, page domain.PaginationRequest) ([]entities.Recipe, int64, error) {
	return r.joinedPage(ctx,
		"JOIN user_follows ON user_follows.following_id = recipes.user_id",
		"user_follows.follower_id = ?", followerID,
		"recipes.created_at desc", page)
}

func (r *recipeRepository) GetLikedRecipes(ctx context.Context, userID uuid.UUID, page domain.PaginationRequest) ([]entities.Recipe, int64, error) {
	return r.joinedPage(ctx,
		"JOIN recipe_likes ON recipe_likes.recipe_id = recipes.id",
		"recipe_likes.user_id = ?", userID,
		"recipe_likes.created_at desc", page)
}

func (r *recipeRepository) GetBookmarkedRecipes(ctx context.Context, userID uuid.UUID, page domain.PaginationRequest) ([]entities.Recipe, int64, error) {
	return r.joinedPage(ctx,
		"JOIN recipe_bookmarks ON recipe_bookmarks.recipe_id = recipes.id",
		"recipe_bookmarks.user_id = ?", userID,
		"recipe_bookmarks.created_at desc", page)
}

func (r *recipeRepository) joinedPage(ctx context.Context, join, where string, arg any, order string, page domain.PaginationRequest) ([]entities.Recipe, int64, error) {
	var recipes []entities.Recipe
	var count int64

	if err := database.Conn(ctx, r.db).
		Model(&entities.Recipe{}).
		Joins(join).
		Where(where, arg).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := withAggregate(database.Conn(ctx, r.db)).
		Select("recipes.*").
		Joins(join).
		Where(where, arg).
		Offset(page.Offset()).
		Limit(page.Limit).
		Order(order).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

// FilterByIngredients matches ingredient names case-insensitively. A recipe
// qualifies when it has every name in include and none in exclude. Both
// slices must already be lower-cased and de-duplicated.
func (r *recipeRepository) FilterByIngredients(ctx context.Context, include, exclude []string) ([]entities.Recipe, error) {
	db := database.Conn(ctx, r.db)
	query := withAggregate(db)

	if len(include) > 0 {
		having := db.Model(&entities.Ingredient{}).
			Select("recipe_id").
			Where("LOWER(name) IN ?", include).
			Group("recipe_id").
			Having("COUNT(DISTINCT LOWER(name)) >= ?", len(include))
		query = query.Where("recipes.id IN (?)", having)
	}
	if len(exclude) > 0 {
		excluded := db.Model(&entities.Ingredient{}).
			Select("recipe_id").
			Where("LOWER(name) IN ?", exclude)
		query = query.Where("recipes.id NOT IN (?)", excluded)
	}

	var recipes []entities.Recipe
	err := query.Order("recipes.created_at desc").Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepository) GetViewerState(ctx context.Context, viewerID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]ViewerState, error) {
	state := make(map[uuid.UUID]ViewerState, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return state, nil
	}
	db := database.Conn(ctx, r.db)

	var liked, bookmarked []uuid.UUID
	if err := db.Model(&entities.RecipeLike{}).
		Where("user_id = ? AND recipe_id IN ?", viewerID, recipeIDs).
		Pluck("recipe_id", &liked).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&entities.RecipeBookmark{}).
		Where("user_id = ? AND recipe_id IN ?", viewerID, recipeIDs).
		Pluck("recipe_id", &bookmarked).Error; err != nil {
		return nil, err
	}
	var ratings []entities.RecipeRating
	if err := db.Where("user_id = ? AND recipe_id IN ?", viewerID, recipeIDs).Find(&ratings).Error; err != nil {
		return nil, err
	}

	for _, id := range liked {
		s := state[id]
		s.Liked = true
		state[id] = s
	}
	for _, id := range bookmarked {
		s := state[id]
		s.Bookmarked = true
		state[id] = s
	}
	for _, rating := range ratings {
		s := state[rating.RecipeID]
		score := rating.Score
		s.Rating = &score
		state[rating.RecipeID] = s
	}
	return state, nil
}

func (r *recipeRepository) OwnerExists(ctx context.Context, ownerID uuid.UUID) (bool, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&entities.User{}).Where("id = ?", ownerID).Count(&count).Error
	return count > 0, err
}

func (r *recipeRepository) ListIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := database.Conn(ctx, r.db).Model(&entities.Recipe{}).Where("user_id = ?", ownerID).Pluck("id", &ids).Error
	return ids, err
}

// EngagedRecipeIDs lists recipes whose counters depend on rows written by userID.
func (r *recipeRepository) EngagedRecipeIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	db := database.Conn(ctx, r.db)
	seen := map[uuid.UUID]bool{}
	var out []uuid.UUID

	for _, model := range []any{
		&entities.RecipeLike{},
		&entities.RecipeBookmark{},
		&entities.RecipeRating{},
		&entities.RecipeComment{},
	} {
		var ids []uuid.UUID
		if err := db.Model(model).Where("user_id = ?", userID).Distinct().Pluck("recipe_id", &ids).Error; err != nil {
			return nil, err
		}
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out, nil
}

func (r *recipeRepository) IncrementCounter(ctx context.Context, id uuid.UUID, column string) error {
	if !counterColumns[column] {
		return fmt.Errorf("unknown counter column %q", column)
	}
	return database.Conn(ctx, r.db).Model(&entities.Recipe{}).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + 1")).Error
}

// DecrementCounter lowers the counter by one and clamps at zero.
func (r *recipeRepository) DecrementCounter(ctx context.Context, id uuid.UUID, column string) error {
	if !counterColumns[column] {
		return fmt.Errorf("unknown counter column %q", column)
	}
	return database.Conn(ctx, r.db).Model(&entities.Recipe{}).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr("CASE WHEN "+column+" > 0 THEN "+column+" - 1 ELSE 0 END")).Error
}

// RefreshRatingStats recomputes ratings_count and average_rating from every
// rating row of the recipe and stores them.
func (r *recipeRepository) RefreshRatingStats(ctx context.Context, id uuid.UUID) (int, float64, error) {
	db := database.Conn(ctx, r.db)

	var stats struct {
		Total   int64
		Average float64
	}
	if err := db.Model(&entities.RecipeRating{}).
		Select("COUNT(*) AS total, COALESCE(AVG(score), 0) AS average").
		Where("recipe_id = ?", id).
		Scan(&stats).Error; err != nil {
		return 0, 0, err
	}

	average := RoundRating(stats.Average)
	if err := db.Model(&entities.Recipe{}).Where("id = ?", id).UpdateColumns(map[string]any{
		entities.ColumnRatingsCount:  stats.Total,
		entities.ColumnAverageRating: average,
	}).Error; err != nil {
		return 0, 0, err
	}
	return int(stats.Total), average, nil
}

// RecountCounters rebuilds every denormalized counter of the given recipes
// from the detail tables.
func (r *recipeRepository) RecountCounters(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return database.Conn(ctx, r.db).Model(&entities.Recipe{}).Where("id IN ?", ids).UpdateColumns(map[string]any{
		entities.ColumnLikesCount:     gorm.Expr("(SELECT COUNT(*) FROM recipe_likes WHERE recipe_likes.recipe_id = recipes.id)"),
		entities.ColumnBookmarksCount: gorm.Expr("(SELECT COUNT(*) FROM recipe_bookmarks WHERE recipe_bookmarks.recipe_id = recipes.id)"),
		entities.ColumnRatingsCount:   gorm.Expr("(SELECT COUNT(*) FROM recipe_ratings WHERE recipe_ratings.recipe_id = recipes.id)"),
		entities.ColumnAverageRating:  gorm.Expr("COALESCE((SELECT ROUND(AVG(recipe_ratings.score), 2) FROM recipe_ratings WHERE recipe_ratings.recipe_id = recipes.id), 0)"),
		entities.ColumnCommentsCount:  gorm.Expr("(SELECT COUNT(*) FROM recipe_comments WHERE recipe_comments.recipe_id = recipes.id AND recipe_comments.parent_comment_id IS NULL)"),
	}).Error
}
