// Package testutil builds throwaway databases and fixtures for package tests.
package testutil

import (
	"testing"

	migration "cookbook-backend/cmd/database/migrate"
	"cookbook-backend/entities"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens an in-memory sqlite database migrated with the production
// schema. The pool is pinned to one connection because every sqlite
// connection to ":memory:" would otherwise see its own empty database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migration.Migrate(db))
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, email, fullName string) *entities.User {
	t.Helper()

	user := &entities.User{
		Email:    email,
		Password: "hashed",
		FullName: fullName,
		Provider: entities.ProviderLocal,
		Role:     entities.RoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateRecipe(t *testing.T, db *gorm.DB, owner *entities.User, title string) *entities.Recipe {
	t.Helper()

	recipe := &entities.Recipe{
		UserID:      owner.ID,
		Title:       title,
		Servings:    2,
		CookingTime: 30,
		Ingredients: []entities.Ingredient{
			{Name: "Salt", Quantity: "1", Unit: "tsp"},
		},
		Steps: []entities.RecipeStep{
			{StepNumber: 1, Title: "Prep", Description: "Prepare everything", Images: []entities.StepImage{
				{ImageURL: "https://cdn.example.com/step1.jpg", OrderNumber: 1},
			}},
		},
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}

// Reload fetches a fresh copy of a recipe row so counter assertions do not
// rely on in-memory structs.
func Reload(t *testing.T, db *gorm.DB, id any) *entities.Recipe {
	t.Helper()

	var recipe entities.Recipe
	require.NoError(t, db.First(&recipe, "id = ?", id).Error)
	return &recipe
}

func Count(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}
