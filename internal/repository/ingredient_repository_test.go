package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/foodgram-backend/internal/model"
)

func setupRepoDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{}, &model.Tag{}, &model.Ingredient{},
		&model.Recipe{}, &model.RecipeIngredient{},
		&model.Favorite{}, &model.ShoppingCart{}, &model.Subscription{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestIngredientPrefixSearch(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewIngredientRepository(db)
	ctx := context.Background()

	seed := []model.Ingredient{
		{Name: "Sugar", MeasurementUnit: "g"},
		{Name: "sugar cane", MeasurementUnit: "g"},
		{Name: "salt", MeasurementUnit: "g"},
		{Name: "brown sugar", MeasurementUnit: "g"},
	}
	require.NoError(t, db.Create(&seed).Error)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	// prefix match is case-insensitive and anchored at the start
	found, err := repo.List(ctx, "SuG")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Sugar", found[0].Name)
	assert.Equal(t, "sugar cane", found[1].Name)

	none, err := repo.List(ctx, "pepper")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestIngredientSearchEscapesWildcards(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewIngredientRepository(db)
	ctx := context.Background()

	seed := []model.Ingredient{
		{Name: "100% cocoa", MeasurementUnit: "g"},
		{Name: "100ml cream", MeasurementUnit: "ml"},
	}
	require.NoError(t, db.Create(&seed).Error)

	found, err := repo.List(ctx, "100%")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "100% cocoa", found[0].Name)
}

func TestIngredientUniquePerUnit(t *testing.T) {
	db := setupRepoDB(t)

	require.NoError(t, db.Create(&model.Ingredient{Name: "milk", MeasurementUnit: "ml"}).Error)
	// same name under a different unit is a distinct ingredient
	require.NoError(t, db.Create(&model.Ingredient{Name: "milk", MeasurementUnit: "l"}).Error)

	err := db.Create(&model.Ingredient{Name: "milk", MeasurementUnit: "ml"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
