package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/foodgram-backend/internal/apperr"
	"github.com/d60-Lab/foodgram-backend/internal/model"
	"github.com/d60-Lab/foodgram-backend/internal/repository"
)

// ReferenceService serves the immutable reference data: tags and ingredients.
type ReferenceService interface {
	ListTags(ctx context.Context) ([]model.Tag, error)
	GetTag(ctx context.Context, id uint) (*model.Tag, error)
	ListIngredients(ctx context.Context, namePrefix string) ([]model.Ingredient, error)
	GetIngredient(ctx context.Context, id uint) (*model.Ingredient, error)
}

type referenceService struct {
	tags        repository.TagRepository
	ingredients repository.IngredientRepository
}

func NewReferenceService(tags repository.TagRepository, ingredients repository.IngredientRepository) ReferenceService {
	return &referenceService{tags: tags, ingredients: ingredients}
}

func (s *referenceService) ListTags(ctx context.Context) ([]model.Tag, error) {
	return s.tags.List(ctx)
}

func (s *referenceService) GetTag(ctx context.Context, id uint) (*model.Tag, error) {
	tag, err := s.tags.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.KindNotFound, "tag not found")
	}
	return tag, err
}

func (s *referenceService) ListIngredients(ctx context.Context, namePrefix string) ([]model.Ingredient, error) {
	return s.ingredients.List(ctx, namePrefix)
}

func (s *referenceService) GetIngredient(ctx context.Context, id uint) (*model.Ingredient, error) {
	ing, err := s.ingredients.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.KindNotFound, "ingredient not found")
	}
	return ing, err
}
