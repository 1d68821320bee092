package notification

import (
	"context"
	"cookbook-backend/entities"
	"cookbook-backend/pkg/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	NotificationRepository interface {
		CreateNotification(ctx context.Context, n *entities.Notification) error
		HasUnreadDuplicate(ctx context.Context, recipientID uuid.UUID, notificationType entities.NotificationType, actorID uuid.UUID, recipeID *uuid.UUID) (bool, error)
		GetNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]entities.Notification, error)
		CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
		MarkRead(ctx context.Context, userID, id uuid.UUID) (bool, error)
		MarkAllRead(ctx context.Context, userID uuid.UUID) error
		DeleteNotification(ctx context.Context, userID, id uuid.UUID) (bool, error)
		DeleteAll(ctx context.Context, userID uuid.UUID) error
	}

	notificationRepository struct {
		db *gorm.DB
	}
)

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) CreateNotification(ctx context.Context, n *entities.Notification) error {
	return database.Conn(ctx, r.db).Create(n).Error
}

// HasUnreadDuplicate reports whether an unread notification with the same
// recipient, type, actor and recipe exists. A nil recipe matches only rows
// without a recipe.
func (r *notificationRepository) HasUnreadDuplicate(ctx context.Context, recipientID uuid.UUID, notificationType entities.NotificationType, actorID uuid.UUID, recipeID *uuid.UUID) (bool, error) {
	query := database.Conn(ctx, r.db).
		Model(&entities.Notification{}).
		Where("user_id = ? AND type = ? AND actor_id = ? AND is_read = ?", recipientID, notificationType, actorID, false)
	if recipeID != nil {
		query = query.Where("recipe_id = ?", *recipeID)
	} else {
		query = query.Where("recipe_id IS NULL")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *notificationRepository) GetNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]entities.Notification, error) {
	query := database.Conn(ctx, r.db).
		Preload("Actor").
		Preload("Recipe").
		Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []entities.Notification
	err := query.Order("created_at desc").Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db).
		Model(&entities.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead flags one notification of userID as read. It reports false when
// the notification does not exist or belongs to someone else.
func (r *notificationRepository) MarkRead(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	db := database.Conn(ctx, r.db)

	var count int64
	if err := db.Model(&entities.Notification{}).Where("id = ? AND user_id = ?", id, userID).Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, nil
	}
	err := db.Model(&entities.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true).Error
	return err == nil, err
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return database.Conn(ctx, r.db).
		Model(&entities.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

func (r *notificationRepository) DeleteNotification(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	res := database.Conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).Delete(&entities.Notification{})
	return res.RowsAffected > 0, res.Error
}

func (r *notificationRepository) DeleteAll(ctx context.Context, userID uuid.UUID) error {
	return database.Conn(ctx, r.db).Where("user_id = ?", userID).Delete(&entities.Notification{}).Error
}
