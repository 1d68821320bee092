package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecipeComment struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	RecipeID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"recipe_id"`
	Comment         string     `gorm:"type:text;not null" json:"comment"`
	ParentCommentID *uuid.UUID `gorm:"type:uuid;index" json:"parent_comment_id,omitempty"`

	User    *User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe  *Recipe         `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Replies []RecipeComment `gorm:"foreignKey:ParentCommentID;constraint:OnDelete:CASCADE"`
	Timestamp
}

func (c *RecipeComment) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

func (c *RecipeComment) IsRoot() bool {
	return c.ParentCommentID == nil
}
