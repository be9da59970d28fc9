package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/foodgram-backend/internal/apperr"
	"github.com/d60-Lab/foodgram-backend/internal/model"
	"github.com/d60-Lab/foodgram-backend/internal/repository"
)

// CollectionService implements the strict add/remove toggles over favorites
// and the shopping cart. Add on a member and Remove on a non-member are
// errors, not no-ops.
type CollectionService interface {
	Add(ctx context.Context, kind model.CollectionKind, userID, recipeID uint) (*RecipeShort, error)
	Remove(ctx context.Context, kind model.CollectionKind, userID, recipeID uint) error
}

type collectionService struct {
	collections repository.CollectionRepository
	recipes     repository.RecipeRepository
}

func NewCollectionService(collections repository.CollectionRepository, recipes repository.RecipeRepository) CollectionService {
	return &collectionService{collections: collections, recipes: recipes}
}

func (s *collectionService) Add(ctx context.Context, kind model.CollectionKind, userID, recipeID uint) (*RecipeShort, error) {
	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "recipe not found")
		}
		return nil, err
	}
	if err := s.collections.Add(ctx, kind, userID, recipeID); err != nil {
		// the unique index also settles concurrent double-adds
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.New(apperr.KindAlreadyExists, alreadyMsg(kind))
		}
		return nil, err
	}
	short := newRecipeShort(recipe)
	return &short, nil
}

func (s *collectionService) Remove(ctx context.Context, kind model.CollectionKind, userID, recipeID uint) error {
	if _, err := s.recipes.GetByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.KindNotFound, "recipe not found")
		}
		return err
	}
	removed, err := s.collections.Remove(ctx, kind, userID, recipeID)
	if err != nil {
		return err
	}
	if !removed {
		return apperr.New(apperr.KindNotFound, absentMsg(kind))
	}
	return nil
}

func alreadyMsg(kind model.CollectionKind) string {
	if kind == model.CollectionFavorite {
		return "recipe is already in favorites"
	}
	return "recipe is already in the shopping cart"
}

func absentMsg(kind model.CollectionKind) string {
	if kind == model.CollectionFavorite {
		return "recipe is not in favorites"
	}
	return "recipe is not in the shopping cart"
}
