package follow

import (
	"context"
	"cookbook-backend/domain"
	"cookbook-backend/entities"
	"cookbook-backend/internal/metrics"
	"cookbook-backend/pkg/database"
	"cookbook-backend/pkg/notification"
	"cookbook-backend/pkg/user"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FollowService interface {
		Follow(ctx context.Context, followerID, followingID uuid.UUID) error
		Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error
		IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
		Followers(ctx context.Context, userID uuid.UUID) ([]domain.UserSummary, error)
		Following(ctx context.Context, userID uuid.UUID) ([]domain.UserSummary, error)
		Stats(ctx context.Context, userID uuid.UUID) (domain.FollowStatsResponse, error)
	}

	followService struct {
		followRepository    FollowRepository
		userRepository      user.UserRepository
		notificationService notification.NotificationService
		transactor          database.Transactor
	}
)

func NewFollowService(
	followRepository FollowRepository,
	userRepository user.UserRepository,
	notificationService notification.NotificationService,
	transactor database.Transactor,
) FollowService {
	return &followService{
		followRepository:    followRepository,
		userRepository:      userRepository,
		notificationService: notificationService,
		transactor:          transactor,
	}
}

// Follow stores the relationship and moves both users' stored counters in the
// same transaction.
func (s *followService) Follow(ctx context.Context, followerID, followingID uuid.UUID) error {
	if followerID == followingID {
		return domain.ErrCannotFollowSelf
	}

	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.requireUser(ctx, followingID); err != nil {
			return err
		}
		created, err := s.followRepository.CreateFollow(ctx, followerID, followingID)
		if err != nil {
			return err
		}
		if !created {
			return domain.ErrAlreadyFollowing
		}
		return s.userRepository.AdjustFollowCounters(ctx, followerID, followingID, 1)
	})
	if err != nil {
		return err
	}

	metrics.RecordEngagement("follow", "add")
	s.notificationService.NotifyBestEffort(ctx, notification.Notice{
		RecipientID: followingID,
		ActorID:     followerID,
		Type:        entities.NotificationFollow,
		Message:     "started following you",
	})
	return nil
}

func (s *followService) Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error {
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		removed, err := s.followRepository.DeleteFollow(ctx, followerID, followingID)
		if err != nil {
			return err
		}
		if !removed {
			return domain.ErrNotFollowing
		}
		return s.userRepository.AdjustFollowCounters(ctx, followerID, followingID, -1)
	})
	if err != nil {
		return err
	}
	metrics.RecordEngagement("follow", "remove")
	return nil
}

func (s *followService) IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	return s.followRepository.IsFollowing(ctx, followerID, followingID)
}

func (s *followService) Followers(ctx context.Context, userID uuid.UUID) ([]domain.UserSummary, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	users, err := s.followRepository.GetFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.ToUserSummaries(users), nil
}

func (s *followService) Following(ctx context.Context, userID uuid.UUID) ([]domain.UserSummary, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	users, err := s.followRepository.GetFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.ToUserSummaries(users), nil
}

// Stats reads the stored counters, which are the source of truth for
// follower and following totals.
func (s *followService) Stats(ctx context.Context, userID uuid.UUID) (domain.FollowStatsResponse, error) {
	u, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FollowStatsResponse{}, domain.ErrUserNotFound
		}
		return domain.FollowStatsResponse{}, err
	}
	return domain.FollowStatsResponse{
		FollowersCount: u.FollowersCount,
		FollowingCount: u.FollowingCount,
	}, nil
}

func (s *followService) requireUser(ctx context.Context, id uuid.UUID) error {
	ok, err := s.userRepository.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUserNotFound
	}
	return nil
}
