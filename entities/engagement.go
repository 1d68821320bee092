package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// At most one like, bookmark and rating per (user, recipe); the unique
// indexes reject concurrent duplicate inserts.

type RecipeLike struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_like_user_recipe" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_like_user_recipe;index" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

func (l *RecipeLike) BeforeCreate(tx *gorm.DB) error {
	ensureID(&l.ID)
	return nil
}

type RecipeBookmark struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_bookmark_user_recipe" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_bookmark_user_recipe;index" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

func (b *RecipeBookmark) BeforeCreate(tx *gorm.DB) error {
	ensureID(&b.ID)
	return nil
}

type RecipeRating struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_rating_user_recipe" json:"user_id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_rating_user_recipe;index" json:"recipe_id"`
	Score    int       `gorm:"not null;check:score >= 1 AND score <= 5" json:"score"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Timestamp
}

func (r *RecipeRating) BeforeCreate(tx *gorm.DB) error {
	ensureID(&r.ID)
	return nil
}
