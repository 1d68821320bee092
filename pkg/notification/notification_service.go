package notification

import (
	"context"
	"cookbook-backend/domain"
	"cookbook-backend/entities"
	"cookbook-backend/internal/metrics"
	"cookbook-backend/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type (
	// Notice describes one activity to deliver to a recipient.
	Notice struct {
		RecipientID uuid.UUID
		ActorID     uuid.UUID
		Type        entities.NotificationType
		RecipeID    *uuid.UUID
		CommentID   *uuid.UUID
		Message     string
	}

	NotificationService interface {
		// Notify stores the notice unless the actor is the recipient or an
		// identical unread notice is already waiting. It reports whether a
		// row was created.
		Notify(ctx context.Context, notice Notice) (bool, error)
		// NotifyBestEffort is Notify for side effects: failures are logged
		// and counted, never returned.
		NotifyBestEffort(ctx context.Context, notice Notice)

		GetNotifications(ctx context.Context, userID uuid.UUID) ([]domain.NotificationResponse, error)
		GetUnread(ctx context.Context, userID uuid.UUID) ([]domain.NotificationResponse, error)
		CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
		MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
		MarkAllRead(ctx context.Context, userID uuid.UUID) error
		Delete(ctx context.Context, userID, notificationID uuid.UUID) error
		DeleteAll(ctx context.Context, userID uuid.UUID) error
	}

	notificationService struct {
		notificationRepository NotificationRepository
	}
)

func NewNotificationService(notificationRepository NotificationRepository) NotificationService {
	return &notificationService{notificationRepository: notificationRepository}
}

func (s *notificationService) Notify(ctx context.Context, notice Notice) (bool, error) {
	kind := string(notice.Type)
	if notice.RecipientID == notice.ActorID {
		metrics.RecordNotification(kind, "self")
		return false, nil
	}

	dup, err := s.notificationRepository.HasUnreadDuplicate(ctx, notice.RecipientID, notice.Type, notice.ActorID, notice.RecipeID)
	if err != nil {
		return false, err
	}
	if dup {
		metrics.RecordNotification(kind, "duplicate")
		return false, nil
	}

	if err := s.notificationRepository.CreateNotification(ctx, &entities.Notification{
		UserID:    notice.RecipientID,
		Type:      notice.Type,
		ActorID:   notice.ActorID,
		RecipeID:  notice.RecipeID,
		CommentID: notice.CommentID,
		Message:   notice.Message,
	}); err != nil {
		return false, err
	}
	metrics.RecordNotification(kind, "created")
	return true, nil
}

func (s *notificationService) NotifyBestEffort(ctx context.Context, notice Notice) {
	if _, err := s.Notify(ctx, notice); err != nil {
		metrics.RecordNotification(string(notice.Type), "failed")
		metrics.RecordBestEffortFailure("notification")
		utils.Logger.Warn("failed to create notification",
			zap.String("type", string(notice.Type)),
			zap.String("recipient_id", notice.RecipientID.String()),
			zap.String("actor_id", notice.ActorID.String()),
			zap.Error(err))
	}
}

func (s *notificationService) GetNotifications(ctx context.Context, userID uuid.UUID) ([]domain.NotificationResponse, error) {
	return s.list(ctx, userID, false)
}

func (s *notificationService) GetUnread(ctx context.Context, userID uuid.UUID) ([]domain.NotificationResponse, error) {
	return s.list(ctx, userID, true)
}

func (s *notificationService) list(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]domain.NotificationResponse, error) {
	rows, err := s.notificationRepository.GetNotifications(ctx, userID, unreadOnly)
	if err != nil {
		return nil, err
	}
	out := make([]domain.NotificationResponse, 0, len(rows))
	for _, n := range rows {
		out = append(out, toResponse(n))
	}
	return out, nil
}

func (s *notificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notificationRepository.CountUnread(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	found, err := s.notificationRepository.MarkRead(ctx, userID, notificationID)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.notificationRepository.MarkAllRead(ctx, userID)
}

func (s *notificationService) Delete(ctx context.Context, userID, notificationID uuid.UUID) error {
	found, err := s.notificationRepository.DeleteNotification(ctx, userID, notificationID)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (s *notificationService) DeleteAll(ctx context.Context, userID uuid.UUID) error {
	return s.notificationRepository.DeleteAll(ctx, userID)
}

func toResponse(n entities.Notification) domain.NotificationResponse {
	res := domain.NotificationResponse{
		ID:        n.ID.String(),
		Type:      string(n.Type),
		ActorID:   n.ActorID.String(),
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
	if n.Actor != nil {
		res.ActorName = n.Actor.FullName
		res.ActorAvatar = n.Actor.AvatarURL
	}
	if n.RecipeID != nil {
		id := n.RecipeID.String()
		res.RecipeID = &id
	}
	if n.Recipe != nil {
		res.RecipeTitle = n.Recipe.Title
		res.RecipeImage = n.Recipe.ImageURL
	}
	if n.CommentID != nil {
		id := n.CommentID.String()
		res.CommentID = &id
	}
	return res
}
