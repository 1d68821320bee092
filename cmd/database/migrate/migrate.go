package migration

import (
	"cookbook-backend/entities"
	"cookbook-backend/internal/utils"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Models lists every table in dependency order.
func Models() []any {
	return []any{
		&entities.User{},
		&entities.Recipe{},
		&entities.Ingredient{},
		&entities.RecipeStep{},
		&entities.StepImage{},
		&entities.RecipeLike{},
		&entities.RecipeBookmark{},
		&entities.RecipeRating{},
		&entities.RecipeComment{},
		&entities.UserFollow{},
		&entities.Notification{},
		&entities.SearchHistory{},
		&entities.RecipeViewHistory{},
	}
}

func Migrate(db *gorm.DB) error {
	for _, model := range Models() {
		if err := db.AutoMigrate(model); err != nil {
			utils.Logger.Error("migration failed", zap.String("model", fmt.Sprintf("%T", model)), zap.Error(err))
			return fmt.Errorf("migrate %T: %w", model, err)
		}
	}

	utils.Logger.Info("database migration complete")
	return nil
}
