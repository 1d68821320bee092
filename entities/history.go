package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SearchHistory struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	SearchQuery string    `gorm:"not null" json:"search_query"`
	SearchedAt  time.Time `gorm:"not null;index" json:"searched_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (h *SearchHistory) BeforeCreate(tx *gorm.DB) error {
	ensureID(&h.ID)
	if h.SearchedAt.IsZero() {
		h.SearchedAt = time.Now()
	}
	return nil
}

// RecipeViewHistory is append-only: every view is a new row and readers
// collapse rows per recipe by the latest ViewedAt.
type RecipeViewHistory struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	ViewedAt time.Time `gorm:"not null" json:"viewed_at"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

func (h *RecipeViewHistory) BeforeCreate(tx *gorm.DB) error {
	ensureID(&h.ID)
	if h.ViewedAt.IsZero() {
		h.ViewedAt = time.Now()
	}
	return nil
}
