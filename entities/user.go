package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProviderLocal = "local"

	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	Password       string    `gorm:"not null" json:"-"`
	FullName       string    `gorm:"not null" json:"full_name"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	Bio            string    `gorm:"type:text" json:"bio,omitempty"`
	Hometown       string    `json:"hometown,omitempty"`
	Provider       string    `gorm:"not null;default:local" json:"provider"`
	Role           string    `gorm:"not null;default:user" json:"role"`
	FollowersCount int       `gorm:"not null;default:0" json:"followers_count"`
	FollowingCount int       `gorm:"not null;default:0" json:"following_count"`

	Timestamp
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	ensureID(&u.ID)
	return nil
}
