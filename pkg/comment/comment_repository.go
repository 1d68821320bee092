package comment

import (
	"context"
	"cookbook-backend/entities"
	"cookbook-backend/pkg/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	CommentRepository interface {
		CreateComment(ctx context.Context, comment *entities.RecipeComment) error
		GetCommentByID(ctx context.Context, id uuid.UUID) (*entities.RecipeComment, error)
		UpdateComment(ctx context.Context, id uuid.UUID, text string) error
		// DeleteComment removes the comment and every reply attached to it.
		DeleteComment(ctx context.Context, id uuid.UUID) error
		GetThreads(ctx context.Context, recipeID uuid.UUID) ([]entities.RecipeComment, error)
	}

	commentRepository struct {
		db *gorm.DB
	}
)

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) CreateComment(ctx context.Context, comment *entities.RecipeComment) error {
	return database.Conn(ctx, r.db).Omit("User", "Recipe", "Replies").Create(comment).Error
}

func (r *commentRepository) GetCommentByID(ctx context.Context, id uuid.UUID) (*entities.RecipeComment, error) {
	var comment entities.RecipeComment
	if err := database.Conn(ctx, r.db).
		Preload("User").
		Preload("Replies", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc") }).
		Preload("Replies.User").
		First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) UpdateComment(ctx context.Context, id uuid.UUID, text string) error {
	res := database.Conn(ctx, r.db).Model(&entities.RecipeComment{}).Where("id = ?", id).Update("comment", text)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *commentRepository) DeleteComment(ctx context.Context, id uuid.UUID) error {
	db := database.Conn(ctx, r.db)
	replies := db.Model(&entities.RecipeComment{}).Select("id").Where("parent_comment_id = ?", id)
	if err := db.Where("comment_id = ? OR comment_id IN (?)", id, replies).Delete(&entities.Notification{}).Error; err != nil {
		return err
	}
	if err := db.Where("parent_comment_id = ?", id).Delete(&entities.RecipeComment{}).Error; err != nil {
		return err
	}
	res := db.Where("id = ?", id).Delete(&entities.RecipeComment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetThreads returns the root comments of a recipe newest first, each with its
// replies oldest first.
func (r *commentRepository) GetThreads(ctx context.Context, recipeID uuid.UUID) ([]entities.RecipeComment, error) {
	var roots []entities.RecipeComment
	err := database.Conn(ctx, r.db).
		Preload("User").
		Preload("Replies", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc") }).
		Preload("Replies.User").
		Where("recipe_id = ? AND parent_comment_id IS NULL", recipeID).
		Order("created_at desc").
		Find(&roots).Error
	return roots, err
}
