package user

import (
	"context"
	"cookbook-backend/domain"
	"cookbook-backend/entities"
	"cookbook-backend/pkg/database"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		GetUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]entities.User, error)
		ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
		ExistsByEmail(ctx context.Context, email string) (bool, error)
		UpdateProfile(ctx context.Context, id uuid.UUID, fields map[string]any) error
		UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error
		ListUsers(ctx context.Context, page domain.PaginationRequest) ([]entities.User, int64, error)
		AdjustFollowCounters(ctx context.Context, followerID, followingID uuid.UUID, delta int) error
		RecountFollowCounters(ctx context.Context, ids []uuid.UUID) error
		FollowNeighborIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)
		DeleteUserData(ctx context.Context, id uuid.UUID) error
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return database.Conn(ctx, r.db).Create(user).Error
}

func (r *userRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var user entities.User
	if err := database.Conn(ctx, r.db).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := database.Conn(ctx, r.db).Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]entities.User, error) {
	var users []entities.User
	if len(ids) == 0 {
		return users, nil
	}
	err := database.Conn(ctx, r.db).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *userRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&entities.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&entities.User{}).Where("email = ?", normalizeEmail(email)).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) UpdateProfile(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	res := database.Conn(ctx, r.db).Model(&entities.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hashed string) error {
	return database.Conn(ctx, r.db).Model(&entities.User{}).Where("id = ?", id).Update("password", hashed).Error
}

func (r *userRepository) ListUsers(ctx context.Context, page domain.PaginationRequest) ([]entities.User, int64, error) {
	var users []entities.User
	var count int64

	if err := database.Conn(ctx, r.db).Model(&entities.User{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := database.Conn(ctx, r.db).
		Offset(page.Offset()).
		Limit(page.Limit).
		Order("created_at desc").
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, count, nil
}

// AdjustFollowCounters moves following_count of the follower and
// followers_count of the followed user by delta, never below zero.
func (r *userRepository) AdjustFollowCounters(ctx context.Context, followerID, followingID uuid.UUID, delta int) error {
	db := database.Conn(ctx, r.db)
	if err := db.Model(&entities.User{}).Where("id = ?", followerID).
		Update("following_count", shiftExpr("following_count", delta)).Error; err != nil {
		return err
	}
	return db.Model(&entities.User{}).Where("id = ?", followingID).
		Update("followers_count", shiftExpr("followers_count", delta)).Error
}

func (r *userRepository) RecountFollowCounters(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return database.Conn(ctx, r.db).Model(&entities.User{}).Where("id IN ?", ids).Updates(map[string]any{
		"followers_count": gorm.Expr("(SELECT COUNT(*) FROM user_follows WHERE user_follows.following_id = users.id)"),
		"following_count": gorm.Expr("(SELECT COUNT(*) FROM user_follows WHERE user_follows.follower_id = users.id)"),
	}).Error
}

// FollowNeighborIDs returns every user that follows id or is followed by id.
func (r *userRepository) FollowNeighborIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	var followers, following []uuid.UUID
	db := database.Conn(ctx, r.db)
	if err := db.Model(&entities.UserFollow{}).Where("following_id = ?", id).Pluck("follower_id", &followers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&entities.UserFollow{}).Where("follower_id = ?", id).Pluck("following_id", &following).Error; err != nil {
		return nil, err
	}
	return append(followers, following...), nil
}

// DeleteUserData removes the user row with everything the user wrote that is
// not attached to the user's own recipes: engagement rows, comments (and the
// replies under the user's root comments), follows, notifications and history.
// Callers delete the user's recipes first and repair counters afterwards.
func (r *userRepository) DeleteUserData(ctx context.Context, id uuid.UUID) error {
	db := database.Conn(ctx, r.db)

	rootComments := db.Model(&entities.RecipeComment{}).Select("id").Where("user_id = ? AND parent_comment_id IS NULL", id)
	steps := []struct {
		model any
		query string
		args  []any
	}{
		{&entities.RecipeComment{}, "parent_comment_id IN (?)", []any{rootComments}},
		{&entities.RecipeComment{}, "user_id = ?", []any{id}},
		{&entities.RecipeLike{}, "user_id = ?", []any{id}},
		{&entities.RecipeBookmark{}, "user_id = ?", []any{id}},
		{&entities.RecipeRating{}, "user_id = ?", []any{id}},
		{&entities.UserFollow{}, "follower_id = ? OR following_id = ?", []any{id, id}},
		{&entities.Notification{}, "user_id = ? OR actor_id = ?", []any{id, id}},
		{&entities.SearchHistory{}, "user_id = ?", []any{id}},
		{&entities.RecipeViewHistory{}, "user_id = ?", []any{id}},
	}
	for _, s := range steps {
		if err := db.Where(s.query, s.args...).Delete(s.model).Error; err != nil {
			return err
		}
	}

	res := db.Where("id = ?", id).Delete(&entities.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func shiftExpr(column string, delta int) any {
	if delta >= 0 {
		return gorm.Expr(column+" + ?", delta)
	}
	return gorm.Expr("CASE WHEN "+column+" + ? > 0 THEN "+column+" + ? ELSE 0 END", delta, delta)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
