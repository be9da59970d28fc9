package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/d60-Lab/foodgram-backend/internal/model"
)

// CollectionRepository is the shared persistence for the two user↔recipe
// membership relations (favorites, shopping cart), keyed by kind.
type CollectionRepository interface {
	// Add inserts the (user, recipe) pair. A duplicate surfaces as
	// gorm.ErrDuplicatedKey via the unique index, also under concurrency.
	Add(ctx context.Context, kind model.CollectionKind, userID, recipeID uint) error
	// Remove deletes the pair and reports whether a row was actually removed.
	Remove(ctx context.Context, kind model.CollectionKind, userID, recipeID uint) (bool, error)
	Exists(ctx context.Context, kind model.CollectionKind, userID, recipeID uint) (bool, error)
	ListRecipeIDs(ctx context.Context, kind model.CollectionKind, userID uint) ([]uint, error)
}

type collectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) Add(ctx context.Context, kind model.CollectionKind, userID, recipeID uint) error {
	switch kind {
	case model.CollectionFavorite:
		return r.db.WithContext(ctx).
			Create(&model.Favorite{UserID: userID, RecipeID: recipeID}).Error
	case model.CollectionShoppingCart:
		return r.db.WithContext(ctx).
			Create(&model.ShoppingCart{UserID: userID, RecipeID: recipeID}).Error
	default:
		return fmt.Errorf("unknown collection kind %q", kind)
	}
}

func (r *collectionRepository) Remove(ctx context.Context, kind model.CollectionKind, userID, recipeID uint) (bool, error) {
	m, err := modelFor(kind)
	if err != nil {
		return false, err
	}
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(m)
	return res.RowsAffected > 0, res.Error
}

func (r *collectionRepository) Exists(ctx context.Context, kind model.CollectionKind, userID, recipeID uint) (bool, error) {
	m, err := modelFor(kind)
	if err != nil {
		return false, err
	}
	var cnt int64
	err = r.db.WithContext(ctx).
		Model(m).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *collectionRepository) ListRecipeIDs(ctx context.Context, kind model.CollectionKind, userID uint) ([]uint, error) {
	m, err := modelFor(kind)
	if err != nil {
		return nil, err
	}
	var ids []uint
	err = r.db.WithContext(ctx).
		Model(m).
		Where("user_id = ?", userID).
		Pluck("recipe_id", &ids).Error
	return ids, err
}

func modelFor(kind model.CollectionKind) (any, error) {
	switch kind {
	case model.CollectionFavorite:
		return &model.Favorite{}, nil
	case model.CollectionShoppingCart:
		return &model.ShoppingCart{}, nil
	default:
		return nil, fmt.Errorf("unknown collection kind %q", kind)
	}
}
