package service

import (
	"encoding/base64"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/foodgram-backend/internal/cache"
	"github.com/d60-Lab/foodgram-backend/internal/model"
	"github.com/d60-Lab/foodgram-backend/internal/repository"
	"github.com/d60-Lab/foodgram-backend/internal/storage"
)

// testEnv wires the full service stack over an in-memory database.
type testEnv struct {
	db            *gorm.DB
	users         UserService
	recipes       RecipeService
	collections   CollectionService
	subscriptions SubscriptionService
	shoppingList  ShoppingListService

	userRepo       repository.UserRepository
	recipeRepo     repository.RecipeRepository
	collectionRepo repository.CollectionRepository
}

func setupEnv(t *testing.T) *testEnv {
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

	userRepo := repository.NewUserRepository(db)
	tagRepo := repository.NewTagRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	collectionRepo := repository.NewCollectionRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	images := storage.NewImageStore(t.TempDir(), "/media/")
	links := cache.NewShortLinkCache(nil, 0)

	return &testEnv{
		db:             db,
		users:          NewUserService(userRepo, subscriptionRepo, images),
		recipes:        NewRecipeService(recipeRepo, tagRepo, ingredientRepo, collectionRepo, subscriptionRepo, images, links, "http://localhost:8000/s/"),
		collections:    NewCollectionService(collectionRepo, recipeRepo),
		subscriptions:  NewSubscriptionService(subscriptionRepo, userRepo, recipeRepo),
		shoppingList:   NewShoppingListService(recipeRepo),
		userRepo:       userRepo,
		recipeRepo:     recipeRepo,
		collectionRepo: collectionRepo,
	}
}

func (e *testEnv) seedUser(t *testing.T, name string) *model.User {
	t.Helper()
	u := &model.User{
		Email:     name + "@example.com",
		Username:  name,
		FirstName: name,
		LastName:  "Test",
		Password:  "x",
	}
	if err := e.db.Create(u).Error; err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return u
}

func (e *testEnv) seedTag(t *testing.T, name string) *model.Tag {
	t.Helper()
	tag := &model.Tag{Name: name, Slug: name}
	if err := e.db.Create(tag).Error; err != nil {
		t.Fatalf("seed tag %s: %v", name, err)
	}
	return tag
}

func (e *testEnv) seedIngredient(t *testing.T, name, unit string) *model.Ingredient {
	t.Helper()
	ing := &model.Ingredient{Name: name, MeasurementUnit: unit}
	if err := e.db.Create(ing).Error; err != nil {
		t.Fatalf("seed ingredient %s: %v", name, err)
	}
	return ing
}

// testImage is a valid single-byte png-ish payload; the store only decodes,
// it does not inspect pixels.
func testImage() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))
}

func validRecipeInput(ings []IngredientAmountInput, tagIDs []uint) RecipeInput {
	return RecipeInput{
		Name:        "Pancakes",
		Image:       testImage(),
		Text:        "Mix and fry.",
		CookingTime: 20,
		Ingredients: ings,
		TagIDs:      tagIDs,
	}
}

func amounts(pairs ...[2]uint) []IngredientAmountInput {
	out := make([]IngredientAmountInput, len(pairs))
	for i, p := range pairs {
		out[i] = IngredientAmountInput{ID: p[0], Amount: int(p[1])}
	}
	return out
}
