package history

import (
	"context"
	"cookbook-backend/entities"
	"cookbook-backend/pkg/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	HistoryRepository interface {
		CreateSearch(ctx context.Context, entry *entities.SearchHistory) error
		RecentQueries(ctx context.Context, userID uuid.UUID, limit int) ([]string, error)
		AllSearches(ctx context.Context, userID uuid.UUID) ([]entities.SearchHistory, error)
		DeleteSearches(ctx context.Context, userID uuid.UUID) error
		DeleteSearchQuery(ctx context.Context, userID uuid.UUID, query string) error
		CountSearches(ctx context.Context, userID uuid.UUID) (int64, error)

		CreateView(ctx context.Context, entry *entities.RecipeViewHistory) error
		RecentlyViewedIDs(ctx context.Context, userID uuid.UUID, limit int) ([]uuid.UUID, error)
		DeleteViews(ctx context.Context, userID uuid.UUID) error
		DeleteView(ctx context.Context, userID, recipeID uuid.UUID) error
	}

	historyRepository struct {
		db *gorm.DB
	}
)

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) CreateSearch(ctx context.Context, entry *entities.SearchHistory) error {
	return database.Conn(ctx, r.db).Create(entry).Error
}

// RecentQueries returns distinct queries ordered by their latest use.
func (r *historyRepository) RecentQueries(ctx context.Context, userID uuid.UUID, limit int) ([]string, error) {
	var queries []string
	err := database.Conn(ctx, r.db).
		Model(&entities.SearchHistory{}).
		Where("user_id = ?", userID).
		Group("search_query").
		Order("MAX(searched_at) DESC").
		Limit(limit).
		Pluck("search_query", &queries).Error
	return queries, err
}

func (r *historyRepository) AllSearches(ctx context.Context, userID uuid.UUID) ([]entities.SearchHistory, error) {
	var entries []entities.SearchHistory
	err := database.Conn(ctx, r.db).
		Where("user_id = ?", userID).
		Order("searched_at desc").
		Find(&entries).Error
	return entries, err
}

func (r *historyRepository) DeleteSearches(ctx context.Context, userID uuid.UUID) error {
	return database.Conn(ctx, r.db).Where("user_id = ?", userID).Delete(&entities.SearchHistory{}).Error
}

func (r *historyRepository) DeleteSearchQuery(ctx context.Context, userID uuid.UUID, query string) error {
	return database.Conn(ctx, r.db).
		Where("user_id = ? AND search_query = ?", userID, query).
		Delete(&entities.SearchHistory{}).Error
}

func (r *historyRepository) CountSearches(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&entities.SearchHistory{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *historyRepository) CreateView(ctx context.Context, entry *entities.RecipeViewHistory) error {
	return database.Conn(ctx, r.db).Create(entry).Error
}

// RecentlyViewedIDs collapses the view log to one entry per recipe, most
// recently viewed first.
func (r *historyRepository) RecentlyViewedIDs(ctx context.Context, userID uuid.UUID, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := database.Conn(ctx, r.db).
		Model(&entities.RecipeViewHistory{}).
		Where("user_id = ?", userID).
		Group("recipe_id").
		Order("MAX(viewed_at) DESC").
		Limit(limit).
		Pluck("recipe_id", &ids).Error
	return ids, err
}

func (r *historyRepository) DeleteViews(ctx context.Context, userID uuid.UUID) error {
	return database.Conn(ctx, r.db).Where("user_id = ?", userID).Delete(&entities.RecipeViewHistory{}).Error
}

func (r *historyRepository) DeleteView(ctx context.Context, userID, recipeID uuid.UUID) error {
	return database.Conn(ctx, r.db).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.RecipeViewHistory{}).Error
}
