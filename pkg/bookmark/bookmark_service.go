package bookmark

import (
	"context"
	"cookbook-backend/domain"
	"cookbook-backend/entities"
	"cookbook-backend/internal/metrics"
	"cookbook-backend/pkg/database"
	"cookbook-backend/pkg/notification"
	"cookbook-backend/pkg/recipe"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	BookmarkService interface {
		Bookmark(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
		RemoveBookmark(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
		Toggle(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
		Status(ctx context.Context, userID, recipeID uuid.UUID) (domain.BookmarkResponse, error)
		BookmarkedRecipeIDs(ctx context.Context, userID uuid.UUID) ([]string, error)
	}

	bookmarkService struct {
		bookmarkRepository  BookmarkRepository
		recipeRepository    recipe.RecipeRepository
		notificationService notification.NotificationService
		transactor          database.Transactor
	}
)

func NewBookmarkService(
	bookmarkRepository BookmarkRepository,
	recipeRepository recipe.RecipeRepository,
	notificationService notification.NotificationService,
	transactor database.Transactor,
) BookmarkService {
	return &bookmarkService{
		bookmarkRepository:  bookmarkRepository,
		recipeRepository:    recipeRepository,
		notificationService: notificationService,
		transactor:          transactor,
	}
}

func (s *bookmarkService) Bookmark(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var (
		target *entities.Recipe
		added  bool
	)
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if target, err = s.getRecipe(ctx, recipeID); err != nil {
			return err
		}
		if added, err = s.bookmarkRepository.CreateBookmark(ctx, userID, recipeID); err != nil || !added {
			return err
		}
		return s.recipeRepository.IncrementCounter(ctx, recipeID, entities.ColumnBookmarksCount)
	})
	if err != nil || !added {
		return false, err
	}

	metrics.RecordEngagement("bookmark", "add")
	s.notificationService.NotifyBestEffort(ctx, notification.Notice{
		RecipientID: target.UserID,
		ActorID:     userID,
		Type:        entities.NotificationBookmark,
		RecipeID:    &target.ID,
		Message:     "bookmarked your recipe",
	})
	return true, nil
}

func (s *bookmarkService) RemoveBookmark(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var removed bool
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if _, err = s.getRecipe(ctx, recipeID); err != nil {
			return err
		}
		if removed, err = s.bookmarkRepository.DeleteBookmark(ctx, userID, recipeID); err != nil || !removed {
			return err
		}
		return s.recipeRepository.DecrementCounter(ctx, recipeID, entities.ColumnBookmarksCount)
	})
	if err != nil {
		return false, err
	}
	if removed {
		metrics.RecordEngagement("bookmark", "remove")
	}
	return removed, nil
}

func (s *bookmarkService) Toggle(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	saved, err := s.bookmarkRepository.IsBookmarked(ctx, userID, recipeID)
	if err != nil {
		return false, err
	}
	if saved {
		_, err = s.RemoveBookmark(ctx, userID, recipeID)
		return false, err
	}
	_, err = s.Bookmark(ctx, userID, recipeID)
	return err == nil, err
}

func (s *bookmarkService) Status(ctx context.Context, userID, recipeID uuid.UUID) (domain.BookmarkResponse, error) {
	target, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return domain.BookmarkResponse{}, err
	}
	saved, err := s.bookmarkRepository.IsBookmarked(ctx, userID, recipeID)
	if err != nil {
		return domain.BookmarkResponse{}, err
	}
	return domain.BookmarkResponse{Bookmarked: saved, BookmarksCount: target.BookmarksCount}, nil
}

func (s *bookmarkService) BookmarkedRecipeIDs(ctx context.Context, userID uuid.UUID) ([]string, error) {
	ids, err := s.bookmarkRepository.BookmarkedRecipeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out, nil
}

func (s *bookmarkService) getRecipe(ctx context.Context, recipeID uuid.UUID) (*entities.Recipe, error) {
	r, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return r, nil
}
