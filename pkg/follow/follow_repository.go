package follow

import (
	"context"
	"cookbook-backend/entities"
	"cookbook-backend/pkg/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	FollowRepository interface {
		CreateFollow(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
		DeleteFollow(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
		IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
		GetFollowers(ctx context.Context, userID uuid.UUID) ([]entities.User, error)
		GetFollowing(ctx context.Context, userID uuid.UUID) ([]entities.User, error)
	}

	followRepository struct {
		db *gorm.DB
	}
)

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) CreateFollow(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	res := database.Conn(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entities.UserFollow{FollowerID: followerID, FollowingID: followingID})
	return res.RowsAffected > 0, res.Error
}

func (r *followRepository) DeleteFollow(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	res := database.Conn(ctx, r.db).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&entities.UserFollow{})
	return res.RowsAffected > 0, res.Error
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	var count int64
	if err := database.Conn(ctx, r.db).
		Model(&entities.UserFollow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *followRepository) GetFollowers(ctx context.Context, userID uuid.UUID) ([]entities.User, error) {
	var users []entities.User
	err := database.Conn(ctx, r.db).
		Select("users.*").
		Joins("JOIN user_follows ON user_follows.follower_id = users.id").
		Where("user_follows.following_id = ?", userID).
		Order("user_follows.created_at desc").
		Find(&users).Error
	return users, err
}

func (r *followRepository) GetFollowing(ctx context.Context, userID uuid.UUID) ([]entities.User, error) {
	var users []entities.User
	err := database.Conn(ctx, r.db).
		Select("users.*").
		Joins("JOIN user_follows ON user_follows.following_id = users.id").
		Where("user_follows.follower_id = ?", userID).
		Order("user_follows.created_at desc").
		Find(&users).Error
	return users, err
}
