package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Denormalized counter columns on recipes.
const (
	ColumnLikesCount     = "likes_count"
	ColumnBookmarksCount = "bookmarks_count"
	ColumnRatingsCount   = "ratings_count"
	ColumnAverageRating  = "average_rating"
	ColumnCommentsCount  = "comments_count"
)

type Recipe struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title          string    `gorm:"not null" json:"title"`
	ImageURL       string    `json:"image_url,omitempty"`
	Servings       int       `gorm:"not null" json:"servings"`
	CookingTime    int       `json:"cooking_time"`
	LikesCount     int       `gorm:"not null;default:0" json:"likes_count"`
	BookmarksCount int       `gorm:"not null;default:0" json:"bookmarks_count"`
	RatingsCount   int       `gorm:"not null;default:0" json:"ratings_count"`
	AverageRating  float64   `gorm:"not null;default:0" json:"average_rating"`
	CommentsCount  int       `gorm:"not null;default:0" json:"comments_count"`

	User        *User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Ingredients []Ingredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Steps       []RecipeStep `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Timestamp
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	ensureID(&r.ID)
	return nil
}

type Ingredient struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	Name     string    `gorm:"not null" json:"name"`
	Quantity string    `json:"quantity"`
	Unit     string    `json:"unit"`
	Position int       `gorm:"not null;default:0" json:"position"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	ensureID(&i.ID)
	return nil
}

type RecipeStep struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID    uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	StepNumber  int       `gorm:"not null" json:"step_number"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`

	Images []StepImage `gorm:"foreignKey:StepID;constraint:OnDelete:CASCADE"`
}

func (s *RecipeStep) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

type StepImage struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StepID      uuid.UUID `gorm:"type:uuid;not null;index" json:"step_id"`
	ImageURL    string    `gorm:"not null" json:"image_url"`
	OrderNumber int       `json:"order_number"`
}

func (i *StepImage) BeforeCreate(tx *gorm.DB) error {
	ensureID(&i.ID)
	return nil
}
