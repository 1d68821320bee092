package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserFollow struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FollowerID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_follow_pair" json:"follower_id"`
	FollowingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_follow_pair;index" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`

	Follower  *User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	Following *User `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE"`
}

func (f *UserFollow) BeforeCreate(tx *gorm.DB) error {
	ensureID(&f.ID)
	return nil
}
