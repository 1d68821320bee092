package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationLike     NotificationType = "LIKE"
	NotificationComment  NotificationType = "COMMENT"
	NotificationRating   NotificationType = "RATING"
	NotificationReply    NotificationType = "REPLY"
	NotificationBookmark NotificationType = "BOOKMARK"
	NotificationFollow   NotificationType = "FOLLOW"
)

type Notification struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"` // recipient
	Type      NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	ActorID   uuid.UUID        `gorm:"type:uuid;not null" json:"actor_id"`
	RecipeID  *uuid.UUID       `gorm:"type:uuid;index" json:"recipe_id,omitempty"`
	CommentID *uuid.UUID       `gorm:"type:uuid" json:"comment_id,omitempty"`
	Message   string           `gorm:"type:text" json:"message"`
	IsRead    bool             `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`

	Actor  *User   `gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	ensureID(&n.ID)
	return nil
}
