package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/foodgram-backend/internal/model"
)

// RecipeFilter narrows recipe listings. Favorited/InCart are three-valued:
// nil means "don't care", true filters in, false filters out. Both need
// UserID to mean anything and are ignored for anonymous requests.
type RecipeFilter struct {
	AuthorID  *uint
	TagSlugs  []string
	Favorited *bool
	InCart    *bool
	UserID    uint // acting user for Favorited/InCart, 0 when anonymous
}

// ShoppingListItem is one aggregated line of a user's shopping list.
type ShoppingListItem struct {
	Name            string
	MeasurementUnit string
	TotalAmount     int
}

type RecipeRepository interface {
	// Create persists the recipe together with its ingredient rows and tag
	// links in a single transaction.
	Create(ctx context.Context, recipe *model.Recipe) error
	// Update saves the recipe fields and fully replaces its ingredient rows
	// and tag links, atomically.
	Update(ctx context.Context, recipe *model.Recipe) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*model.Recipe, error)
	GetByShortLink(ctx context.Context, hash string) (*model.Recipe, error)
	ShortLinkExists(ctx context.Context, hash string) (bool, error)
	List(ctx context.Context, filter RecipeFilter, offset, limit int) ([]model.Recipe, int64, error)
	ListByAuthor(ctx context.Context, authorID uint, limit int) ([]model.Recipe, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
	// AggregateShoppingList sums cart ingredient amounts grouped by
	// (name, measurement unit), ordered by name.
	AggregateShoppingList(ctx context.Context, userID uint) ([]ShoppingListItem, error)
}

type recipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository { return &recipeRepository{db: db} }

func (r *recipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	// gorm creates the has-many rows and many2many links inside one tx
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) Update(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).
			Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Tags").Replace(recipe.Tags); err != nil {
			return err
		}
		for i := range recipe.RecipeIngredients {
			recipe.RecipeIngredients[i].RecipeID = recipe.ID
		}
		if err := tx.Create(&recipe.RecipeIngredients).Error; err != nil {
			return err
		}
		return tx.Model(recipe).
			Select("name", "image", "text", "cooking_time").
			Updates(map[string]any{
				"name":         recipe.Name,
				"image":        recipe.Image,
				"text":         recipe.Text,
				"cooking_time": recipe.CookingTime,
			}).Error
	})
}

func (r *recipeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.ShoppingCart{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Recipe{}, id).Error
	})
}

func (r *recipeRepository) GetByID(ctx context.Context, id uint) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("RecipeIngredients.Ingredient").
		First(&recipe, id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetByShortLink(ctx context.Context, hash string) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.db.WithContext(ctx).Where("short_link_hash = ?", hash).First(&recipe).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) ShortLinkExists(ctx context.Context, hash string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.Recipe{}).
		Where("short_link_hash = ?", hash).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *recipeRepository) List(ctx context.Context, filter RecipeFilter, offset, limit int) ([]model.Recipe, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Recipe{})

	if filter.AuthorID != nil {
		q = q.Where("recipes.author_id = ?", *filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		q = q.Where("recipes.id IN (?)",
			r.db.Table("recipe_tags").
				Select("recipe_tags.recipe_id").
				Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
				Where("tags.slug IN ?", filter.TagSlugs))
	}
	if filter.UserID != 0 && filter.Favorited != nil {
		sub := r.db.Table("favorites").
			Select("favorites.recipe_id").
			Where("favorites.user_id = ?", filter.UserID)
		if *filter.Favorited {
			q = q.Where("recipes.id IN (?)", sub)
		} else {
			q = q.Where("recipes.id NOT IN (?)", sub)
		}
	}
	if filter.UserID != 0 && filter.InCart != nil {
		sub := r.db.Table("shopping_cart").
			Select("shopping_cart.recipe_id").
			Where("shopping_cart.user_id = ?", filter.UserID)
		if *filter.InCart {
			q = q.Where("recipes.id IN (?)", sub)
		} else {
			q = q.Where("recipes.id NOT IN (?)", sub)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []model.Recipe
	err := q.
		Preload("Author").
		Preload("Tags").
		Preload("RecipeIngredients.Ingredient").
		Order("recipes.created_at DESC, recipes.id DESC").
		Offset(offset).Limit(limit).
		Find(&recipes).Error
	return recipes, total, err
}

func (r *recipeRepository) ListByAuthor(ctx context.Context, authorID uint, limit int) ([]model.Recipe, error) {
	q := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var recipes []model.Recipe
	err := q.Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&cnt).Error
	return cnt, err
}

func (r *recipeRepository) AggregateShoppingList(ctx context.Context, userID uint) ([]ShoppingListItem, error) {
	var items []ShoppingListItem
	err := r.db.WithContext(ctx).
		Table("recipe_ingredients").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total_amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_cart ON shopping_cart.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_cart.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Scan(&items).Error
	return items, err
}
