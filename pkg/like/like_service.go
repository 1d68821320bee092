package like

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
	LikeService interface {
		Like(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
		Unlike(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
		// Toggle flips the like and returns the new state. It is a read
		// followed by Like or Unlike, not one atomic step.
		Toggle(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
		Status(ctx context.Context, userID, recipeID uuid.UUID) (domain.LikeResponse, error)
		LikedRecipeIDs(ctx context.Context, userID uuid.UUID) ([]string, error)
	}

	likeService struct {
		likeRepository      LikeRepository
		recipeRepository    recipe.RecipeRepository
		notificationService notification.NotificationService
		transactor          database.Transactor
	}
)

func NewLikeService(
	likeRepository LikeRepository,
	recipeRepository recipe.RecipeRepository,
	notificationService notification.NotificationService,
	transactor database.Transactor,
) LikeService {
	return &likeService{
		likeRepository:      likeRepository,
		recipeRepository:    recipeRepository,
		notificationService: notificationService,
		transactor:          transactor,
	}
}

func (s *likeService) Like(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var (
		target *entities.Recipe
		added  bool
	)
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if target, err = s.getRecipe(ctx, recipeID); err != nil {
			return err
		}
		if added, err = s.likeRepository.CreateLike(ctx, userID, recipeID); err != nil || !added {
			return err
		}
		return s.recipeRepository.IncrementCounter(ctx, recipeID, entities.ColumnLikesCount)
	})
	if err != nil || !added {
		return false, err
	}

	metrics.RecordEngagement("like", "add")
	s.notificationService.NotifyBestEffort(ctx, notification.Notice{
		RecipientID: target.UserID,
		ActorID:     userID,
		Type:        entities.NotificationLike,
		RecipeID:    &target.ID,
		Message:     "liked your recipe",
	})
	return true, nil
}

func (s *likeService) Unlike(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var removed bool
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if _, err = s.getRecipe(ctx, recipeID); err != nil {
			return err
		}
		if removed, err = s.likeRepository.DeleteLike(ctx, userID, recipeID); err != nil || !removed {
			return err
		}
		return s.recipeRepository.DecrementCounter(ctx, recipeID, entities.ColumnLikesCount)
	})
	if err != nil {
		return false, err
	}
	if removed {
		metrics.RecordEngagement("like", "remove")
	}
	return removed, nil
}

func (s *likeService) Toggle(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	liked, err := s.likeRepository.IsLiked(ctx, userID, recipeID)
	if err != nil {
		return false, err
	}
	if liked {
		_, err = s.Unlike(ctx, userID, recipeID)
		return false, err
	}
	_, err = s.Like(ctx, userID, recipeID)
	return err == nil, err
}

func (s *likeService) Status(ctx context.Context, userID, recipeID uuid.UUID) (domain.LikeResponse, error) {
	target, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return domain.LikeResponse{}, err
	}
	liked, err := s.likeRepository.IsLiked(ctx, userID, recipeID)
	if err != nil {
		return domain.LikeResponse{}, err
	}
	return domain.LikeResponse{Liked: liked, LikesCount: target.LikesCount}, nil
}

func (s *likeService) LikedRecipeIDs(ctx context.Context, userID uuid.UUID) ([]string, error) {
	ids, err := s.likeRepository.LikedRecipeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out, nil
}

func (s *likeService) getRecipe(ctx context.Context, recipeID uuid.UUID) (*entities.Recipe, error) {
	r, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return r, nil
}
