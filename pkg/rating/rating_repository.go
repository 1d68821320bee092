package rating

import (
	"context"
	"cookbook-backend/entities"
	"cookbook-backend/pkg/database"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	RatingRepository interface {
		UpsertRating(ctx context.Context, userID, recipeID uuid.UUID, score int) error
		DeleteRating(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
		GetRating(ctx context.Context, userID, recipeID uuid.UUID) (*entities.RecipeRating, error)
		GetRatingsByRecipe(ctx context.Context, recipeID uuid.UUID) ([]entities.RecipeRating, error)
		ScoreDistribution(ctx context.Context, recipeID uuid.UUID) (map[int]int64, error)
	}

	ratingRepository struct {
		db *gorm.DB
	}
)

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// UpsertRating inserts the rating or overwrites the score of the existing
// (user_id, recipe_id) row.
func (r *ratingRepository) UpsertRating(ctx context.Context, userID, recipeID uuid.UUID, score int) error {
	return database.Conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"score":      score,
				"updated_at": time.Now(),
			}),
		}).
		Create(&entities.RecipeRating{UserID: userID, RecipeID: recipeID, Score: score}).Error
}

func (r *ratingRepository) DeleteRating(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	res := database.Conn(ctx, r.db).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.RecipeRating{})
	return res.RowsAffected > 0, res.Error
}

func (r *ratingRepository) GetRating(ctx context.Context, userID, recipeID uuid.UUID) (*entities.RecipeRating, error) {
	var rating entities.RecipeRating
	if err := database.Conn(ctx, r.db).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) GetRatingsByRecipe(ctx context.Context, recipeID uuid.UUID) ([]entities.RecipeRating, error) {
	var ratings []entities.RecipeRating
	err := database.Conn(ctx, r.db).
		Preload("User").
		Where("recipe_id = ?", recipeID).
		Order("updated_at desc").
		Find(&ratings).Error
	return ratings, err
}

func (r *ratingRepository) ScoreDistribution(ctx context.Context, recipeID uuid.UUID) (map[int]int64, error) {
	var rows []struct {
		Score int
		Total int64
	}
	if err := database.Conn(ctx, r.db).
		Model(&entities.RecipeRating{}).
		Select("score, COUNT(*) AS total").
		Where("recipe_id = ?", recipeID).
		Group("score").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[int]int64, len(rows))
	for _, row := range rows {
		out[row.Score] = row.Total
	}
	return out, nil
}
