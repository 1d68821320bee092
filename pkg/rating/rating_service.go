package rating

import (
	"context"
	"cookbook-backend/domain"
	"cookbook-backend/entities"
	"cookbook-backend/internal/metrics"
	"cookbook-backend/pkg/database"
	"cookbook-backend/pkg/notification"
	"cookbook-backend/pkg/recipe"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	minScore = 1
	maxScore = 5
)

type (
	RatingService interface {
		Rate(ctx context.Context, userID, recipeID uuid.UUID, score int) (domain.RatingResponse, error)
		DeleteRating(ctx context.Context, userID, recipeID uuid.UUID) (domain.RatingResponse, error)
		GetUserRating(ctx context.Context, userID, recipeID uuid.UUID) (domain.UserRatingResponse, error)
		Stats(ctx context.Context, recipeID uuid.UUID) (domain.RatingStatsResponse, error)
		ListRatings(ctx context.Context, recipeID uuid.UUID) ([]domain.RatingItemResponse, error)
	}

	ratingService struct {
		ratingRepository    RatingRepository
		recipeRepository    recipe.RecipeRepository
		notificationService notification.NotificationService
		transactor          database.Transactor
	}
)

func NewRatingService(
	ratingRepository RatingRepository,
	recipeRepository recipe.RecipeRepository,
	notificationService notification.NotificationService,
	transactor database.Transactor,
) RatingService {
	return &ratingService{
		ratingRepository:    ratingRepository,
		recipeRepository:    recipeRepository,
		notificationService: notificationService,
		transactor:          transactor,
	}
}

// Rate stores the caller's score and recomputes the recipe average over every
// current rating.
func (s *ratingService) Rate(ctx context.Context, userID, recipeID uuid.UUID, score int) (domain.RatingResponse, error) {
	if score < minScore || score > maxScore {
		return domain.RatingResponse{}, domain.ErrRatingScoreInvalid
	}

	var (
		target *entities.Recipe
		resp   = domain.RatingResponse{Rating: score}
	)
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if target, err = s.getRecipe(ctx, recipeID); err != nil {
			return err
		}
		if err = s.ratingRepository.UpsertRating(ctx, userID, recipeID, score); err != nil {
			return err
		}
		resp.RatingsCount, resp.AverageRating, err = s.recipeRepository.RefreshRatingStats(ctx, recipeID)
		return err
	})
	if err != nil {
		return domain.RatingResponse{}, err
	}

	metrics.RecordEngagement("rating", "rate")
	s.notificationService.NotifyBestEffort(ctx, notification.Notice{
		RecipientID: target.UserID,
		ActorID:     userID,
		Type:        entities.NotificationRating,
		RecipeID:    &target.ID,
		Message:     fmt.Sprintf("rated your recipe %d stars", score),
	})
	return resp, nil
}

func (s *ratingService) DeleteRating(ctx context.Context, userID, recipeID uuid.UUID) (domain.RatingResponse, error) {
	var resp domain.RatingResponse
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.getRecipe(ctx, recipeID); err != nil {
			return err
		}
		removed, err := s.ratingRepository.DeleteRating(ctx, userID, recipeID)
		if err != nil {
			return err
		}
		if !removed {
			return domain.ErrRatingNotFound
		}
		resp.RatingsCount, resp.AverageRating, err = s.recipeRepository.RefreshRatingStats(ctx, recipeID)
		return err
	})
	if err != nil {
		return domain.RatingResponse{}, err
	}

	metrics.RecordEngagement("rating", "remove")
	return resp, nil
}

func (s *ratingService) GetUserRating(ctx context.Context, userID, recipeID uuid.UUID) (domain.UserRatingResponse, error) {
	if _, err := s.getRecipe(ctx, recipeID); err != nil {
		return domain.UserRatingResponse{}, err
	}
	rating, err := s.ratingRepository.GetRating(ctx, userID, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserRatingResponse{}, nil
		}
		return domain.UserRatingResponse{}, err
	}
	score := rating.Score
	return domain.UserRatingResponse{Rating: &score}, nil
}

func (s *ratingService) Stats(ctx context.Context, recipeID uuid.UUID) (domain.RatingStatsResponse, error) {
	target, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return domain.RatingStatsResponse{}, err
	}
	counts, err := s.ratingRepository.ScoreDistribution(ctx, recipeID)
	if err != nil {
		return domain.RatingStatsResponse{}, err
	}

	distribution := make(map[int]int64, maxScore)
	for score := minScore; score <= maxScore; score++ {
		distribution[score] = counts[score]
	}
	return domain.RatingStatsResponse{
		AverageRating: target.AverageRating,
		RatingsCount:  target.RatingsCount,
		Distribution:  distribution,
	}, nil
}

func (s *ratingService) ListRatings(ctx context.Context, recipeID uuid.UUID) ([]domain.RatingItemResponse, error) {
	if _, err := s.getRecipe(ctx, recipeID); err != nil {
		return nil, err
	}
	ratings, err := s.ratingRepository.GetRatingsByRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.RatingItemResponse, 0, len(ratings))
	for _, r := range ratings {
		item := domain.RatingItemResponse{
			ID:        r.ID.String(),
			UserID:    r.UserID.String(),
			Rating:    r.Score,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		}
		if r.User != nil {
			item.UserName = r.User.FullName
			item.UserAvatar = r.User.AvatarURL
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *ratingService) getRecipe(ctx context.Context, recipeID uuid.UUID) (*entities.Recipe, error) {
	r, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return r, nil
}
