package history

import (
	"context"
	"cookbook-backend/domain"
	"cookbook-backend/entities"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	DefaultRecentLimit = 10
	maxRecentLimit     = 50
	maxQueryLength     = 255
)

type (
	HistoryService interface {
		SaveSearch(ctx context.Context, userID uuid.UUID, query string) error
		RecentSearches(ctx context.Context, userID uuid.UUID, limit int) ([]string, error)
		AllSearches(ctx context.Context, userID uuid.UUID) ([]domain.SearchHistoryItem, error)
		ClearSearches(ctx context.Context, userID uuid.UUID) error
		DeleteSearchQuery(ctx context.Context, userID uuid.UUID, query string) error
		CountSearches(ctx context.Context, userID uuid.UUID) (int64, error)

		RecordView(ctx context.Context, userID, recipeID uuid.UUID) error
		RecentlyViewedIDs(ctx context.Context, userID uuid.UUID, limit int) ([]uuid.UUID, error)
		ClearViews(ctx context.Context, userID uuid.UUID) error
		RemoveView(ctx context.Context, userID, recipeID uuid.UUID) error
	}

	historyService struct {
		historyRepository HistoryRepository
		now               func() time.Time
	}
)

func NewHistoryService(historyRepository HistoryRepository) HistoryService {
	return &historyService{
		historyRepository: historyRepository,
		now:               time.Now,
	}
}

func (s *historyService) SaveSearch(ctx context.Context, userID uuid.UUID, query string) error {
	query = normalizeQuery(query)
	if query == "" {
		return domain.ErrSearchQueryBlank
	}
	return s.historyRepository.CreateSearch(ctx, &entities.SearchHistory{
		UserID:      userID,
		SearchQuery: query,
		SearchedAt:  s.now(),
	})
}

func (s *historyService) RecentSearches(ctx context.Context, userID uuid.UUID, limit int) ([]string, error) {
	queries, err := s.historyRepository.RecentQueries(ctx, userID, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	if queries == nil {
		queries = []string{}
	}
	return queries, nil
}

func (s *historyService) AllSearches(ctx context.Context, userID uuid.UUID) ([]domain.SearchHistoryItem, error) {
	entries, err := s.historyRepository.AllSearches(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]domain.SearchHistoryItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, domain.SearchHistoryItem{
			ID:         e.ID.String(),
			Query:      e.SearchQuery,
			SearchedAt: e.SearchedAt,
		})
	}
	return items, nil
}

func (s *historyService) ClearSearches(ctx context.Context, userID uuid.UUID) error {
	return s.historyRepository.DeleteSearches(ctx, userID)
}

func (s *historyService) DeleteSearchQuery(ctx context.Context, userID uuid.UUID, query string) error {
	query = normalizeQuery(query)
	if query == "" {
		return domain.ErrSearchQueryBlank
	}
	return s.historyRepository.DeleteSearchQuery(ctx, userID, query)
}

func (s *historyService) CountSearches(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.historyRepository.CountSearches(ctx, userID)
}

func (s *historyService) RecordView(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.historyRepository.CreateView(ctx, &entities.RecipeViewHistory{
		UserID:   userID,
		RecipeID: recipeID,
		ViewedAt: s.now(),
	})
}

func (s *historyService) RecentlyViewedIDs(ctx context.Context, userID uuid.UUID, limit int) ([]uuid.UUID, error) {
	return s.historyRepository.RecentlyViewedIDs(ctx, userID, clampLimit(limit))
}

func (s *historyService) ClearViews(ctx context.Context, userID uuid.UUID) error {
	return s.historyRepository.DeleteViews(ctx, userID)
}

func (s *historyService) RemoveView(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.historyRepository.DeleteView(ctx, userID, recipeID)
}

func normalizeQuery(query string) string {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) > maxQueryLength {
		query = string([]rune(query)[:maxQueryLength])
	}
	return query
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultRecentLimit
	}
	if limit > maxRecentLimit {
		return maxRecentLimit
	}
	return limit
}
