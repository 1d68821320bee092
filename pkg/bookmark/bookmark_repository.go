package bookmark

import (
	"context"
	"cookbook-backend/entities"
	"cookbook-backend/pkg/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	BookmarkRepository interface {
		CreateBookmark(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
		DeleteBookmark(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
		IsBookmarked(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
		BookmarkedRecipeIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	}

	bookmarkRepository struct {
		db *gorm.DB
	}
)

func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

// CreateBookmark relies on the (user_id, recipe_id) unique index: an existing
// bookmark is left untouched and reported as false.
func (r *bookmarkRepository) CreateBookmark(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	res := database.Conn(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entities.RecipeBookmark{UserID: userID, RecipeID: recipeID})
	return res.RowsAffected > 0, res.Error
}

func (r *bookmarkRepository) DeleteBookmark(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	res := database.Conn(ctx, r.db).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.RecipeBookmark{})
	return res.RowsAffected > 0, res.Error
}

func (r *bookmarkRepository) IsBookmarked(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	if err := database.Conn(ctx, r.db).
		Model(&entities.RecipeBookmark{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *bookmarkRepository) BookmarkedRecipeIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := database.Conn(ctx, r.db).
		Model(&entities.RecipeBookmark{}).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Pluck("recipe_id", &ids).Error
	return ids, err
}
