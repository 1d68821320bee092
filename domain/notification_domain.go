package domain

import (
	"net/http"
	"time"
)

var (
	MessageSuccessGetNotifications   = "success get notifications"
	MessageSuccessMarkRead           = "notification marked as read"
	MessageSuccessMarkAllRead        = "all notifications marked as read"
	MessageSuccessDeleteNotification = "notification deleted"
	MessageSuccessDeleteAll          = "all notifications deleted"

	MessageFailedGetNotifications = "failed to get notifications"

	ErrNotificationNotFound = NewClientError(http.StatusNotFound, "notification not found")
)

type (
	NotificationResponse struct {
		ID          string    `json:"id"`
		Type        string    `json:"type"`
		ActorID     string    `json:"actorId"`
		ActorName   string    `json:"actorName"`
		ActorAvatar string    `json:"actorAvatar,omitempty"`
		RecipeID    *string   `json:"recipeId"`
		RecipeTitle string    `json:"recipeTitle,omitempty"`
		RecipeImage string    `json:"recipeImage,omitempty"`
		CommentID   *string   `json:"commentId"`
		Message     string    `json:"message"`
		IsRead      bool      `json:"isRead"`
		CreatedAt   time.Time `json:"createdAt"`
	}

	UnreadCountResponse struct {
		Count int64 `json:"count"`
	}
)
