package like

import (
	"context"
	"cookbook-backend/entities"
	"cookbook-backend/pkg/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	LikeRepository interface {
		// CreateLike inserts the pair and reports false when it already existed.
		CreateLike(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
		// DeleteLike removes the pair and reports false when it was absent.
		DeleteLike(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
		IsLiked(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
		LikedRecipeIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	}

	likeRepository struct {
		db *gorm.DB
	}
)

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) CreateLike(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	res := database.Conn(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entities.RecipeLike{UserID: userID, RecipeID: recipeID})
	return res.RowsAffected > 0, res.Error
}

func (r *likeRepository) DeleteLike(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	res := database.Conn(ctx, r.db).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.RecipeLike{})
	return res.RowsAffected > 0, res.Error
}

func (r *likeRepository) IsLiked(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	if err := database.Conn(ctx, r.db).
		Model(&entities.RecipeLike{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *likeRepository) LikedRecipeIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := database.Conn(ctx, r.db).
		Model(&entities.RecipeLike{}).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Pluck("recipe_id", &ids).Error
	return ids, err
}
