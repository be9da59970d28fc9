package database

import (
	"gorm.io/gorm"

	"github.com/d60-Lab/foodgram-backend/internal/model"
)

// Migrate creates or updates the schema for every domain table, including
// the composite unique indexes the toggle semantics rely on.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Tag{},
		&model.Ingredient{},
		&model.Recipe{},
		&model.RecipeIngredient{},
		&model.Favorite{},
		&model.ShoppingCart{},
		&model.Subscription{},
	)
}
