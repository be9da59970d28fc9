package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/foodgram-backend/internal/model"
)

type IngredientRepository interface {
	// List returns all ingredients, optionally narrowed to a case-insensitive
	// name prefix.
	List(ctx context.Context, namePrefix string) ([]model.Ingredient, error)
	GetByID(ctx context.Context, id uint) (*model.Ingredient, error)
	GetByIDs(ctx context.Context, ids []uint) ([]model.Ingredient, error)
}

type ingredientRepository struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) List(ctx context.Context, namePrefix string) ([]model.Ingredient, error) {
	q := r.db.WithContext(ctx).Order("name")
	if namePrefix != "" {
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\'`, escapeLike(namePrefix)+"%")
	}
	var ingredients []model.Ingredient
	err := q.Find(&ingredients).Error
	return ingredients, err
}

func (r *ingredientRepository) GetByID(ctx context.Context, id uint) (*model.Ingredient, error) {
	var ing model.Ingredient
	if err := r.db.WithContext(ctx).First(&ing, id).Error; err != nil {
		return nil, err
	}
	return &ing, nil
}

func (r *ingredientRepository) GetByIDs(ctx context.Context, ids []uint) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ingredients).Error
	return ingredients, err
}
