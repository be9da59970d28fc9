package service

import (
	"context"
	"crypto/rand"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/d60-Lab/foodgram-backend/internal/apperr"
	"github.com/d60-Lab/foodgram-backend/internal/cache"
	"github.com/d60-Lab/foodgram-backend/internal/model"
	"github.com/d60-Lab/foodgram-backend/internal/repository"
	"github.com/d60-Lab/foodgram-backend/internal/storage"
)

const shortLinkAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type IngredientAmountInput struct {
	ID     uint `json:"id"`
	Amount int  `json:"amount"`
}

// RecipeInput is the write payload for create and update. Ingredient and tag
// lists are full replacements, never partial edits.
type RecipeInput struct {
	Name        string
	Image       string // base64 data URI; may be empty on update to keep the current image
	Text        string
	CookingTime int
	Ingredients []IngredientAmountInput
	TagIDs      []uint
}

type RecipeService interface {
	Create(ctx context.Context, authorID uint, in RecipeInput) (*RecipePayload, error)
	Update(ctx context.Context, actorID, recipeID uint, in RecipeInput) (*RecipePayload, error)
	Delete(ctx context.Context, actorID, recipeID uint) error
	Get(ctx context.Context, recipeID, viewerID uint) (*RecipePayload, error)
	List(ctx context.Context, filter repository.RecipeFilter, offset, limit int) ([]RecipePayload, int64, error)
	// ShortLink returns the full short URL for a recipe.
	ShortLink(ctx context.Context, recipeID uint) (string, error)
	// ResolveShortLink maps a 6-char hash back to a recipe id.
	ResolveShortLink(ctx context.Context, hash string) (uint, error)
}

type recipeService struct {
	recipes       repository.RecipeRepository
	tags          repository.TagRepository
	ingredients   repository.IngredientRepository
	collections   repository.CollectionRepository
	subscriptions repository.SubscriptionRepository
	images        *storage.ImageStore
	links         *cache.ShortLinkCache
	linkBaseURL   string
}

func NewRecipeService(
	recipes repository.RecipeRepository,
	tags repository.TagRepository,
	ingredients repository.IngredientRepository,
	collections repository.CollectionRepository,
	subscriptions repository.SubscriptionRepository,
	images *storage.ImageStore,
	links *cache.ShortLinkCache,
	linkBaseURL string,
) RecipeService {
	return &recipeService{
		recipes:       recipes,
		tags:          tags,
		ingredients:   ingredients,
		collections:   collections,
		subscriptions: subscriptions,
		images:        images,
		links:         links,
		linkBaseURL:   linkBaseURL,
	}
}

// normalized is the validated composition ready for persistence: references
// resolved, submission order preserved.
type normalized struct {
	tags        []model.Tag
	ingredients []model.RecipeIngredient
}

// validateComposition enforces the recipe invariants: non-empty deduplicated
// ingredient and tag lists, positive amounts, every reference resolvable.
func (s *recipeService) validateComposition(ctx context.Context, in RecipeInput) (*normalized, error) {
	if in.CookingTime < 1 {
		return nil, apperr.Field(apperr.KindInvalidField, "cooking_time", "cooking time must be at least 1")
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, apperr.Field(apperr.KindMissingField, "text", "this field may not be blank")
	}
	if len(in.Ingredients) == 0 {
		return nil, apperr.Field(apperr.KindMissingField, "ingredients", "this list may not be empty")
	}
	if len(in.TagIDs) == 0 {
		return nil, apperr.Field(apperr.KindMissingField, "tags", "this list may not be empty")
	}

	seenIng := make(map[uint]struct{}, len(in.Ingredients))
	ingIDs := make([]uint, 0, len(in.Ingredients))
	for _, item := range in.Ingredients {
		if item.Amount < 1 {
			return nil, apperr.Field(apperr.KindInvalidField, "ingredients", "amount must be at least 1")
		}
		if _, dup := seenIng[item.ID]; dup {
			return nil, apperr.Field(apperr.KindDuplicateReference, "ingredients", "ingredients must not repeat")
		}
		seenIng[item.ID] = struct{}{}
		ingIDs = append(ingIDs, item.ID)
	}

	seenTag := make(map[uint]struct{}, len(in.TagIDs))
	for _, id := range in.TagIDs {
		if _, dup := seenTag[id]; dup {
			return nil, apperr.Field(apperr.KindDuplicateReference, "tags", "tags must not repeat")
		}
		seenTag[id] = struct{}{}
	}

	found, err := s.ingredients.GetByIDs(ctx, ingIDs)
	if err != nil {
		return nil, err
	}
	if len(found) != len(ingIDs) {
		return nil, apperr.Field(apperr.KindUnknownReference, "ingredients", "unknown ingredient id")
	}
	foundTags, err := s.tags.GetByIDs(ctx, in.TagIDs)
	if err != nil {
		return nil, err
	}
	if len(foundTags) != len(in.TagIDs) {
		return nil, apperr.Field(apperr.KindUnknownReference, "tags", "unknown tag id")
	}

	// keep submission order for both lists
	tagByID := make(map[uint]model.Tag, len(foundTags))
	for _, t := range foundTags {
		tagByID[t.ID] = t
	}
	orderedTags := make([]model.Tag, 0, len(in.TagIDs))
	for _, id := range in.TagIDs {
		orderedTags = append(orderedTags, tagByID[id])
	}
	rows := make([]model.RecipeIngredient, 0, len(in.Ingredients))
	for _, item := range in.Ingredients {
		rows = append(rows, model.RecipeIngredient{IngredientID: item.ID, Amount: item.Amount})
	}
	return &normalized{tags: orderedTags, ingredients: rows}, nil
}

func (s *recipeService) Create(ctx context.Context, authorID uint, in RecipeInput) (*RecipePayload, error) {
	if in.Image == "" {
		return nil, apperr.Field(apperr.KindMissingField, "image", "this field may not be blank")
	}
	norm, err := s.validateComposition(ctx, in)
	if err != nil {
		return nil, err
	}
	imageURL, err := s.images.Save("recipes", in.Image)
	if err != nil {
		return nil, err
	}
	hash, err := s.generateShortLink(ctx)
	if err != nil {
		return nil, err
	}

	recipe := &model.Recipe{
		AuthorID:          authorID,
		Name:              in.Name,
		Image:             imageURL,
		Text:              in.Text,
		CookingTime:       in.CookingTime,
		ShortLinkHash:     hash,
		Tags:              norm.tags,
		RecipeIngredients: norm.ingredients,
	}
	if err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, err
	}
	return s.Get(ctx, recipe.ID, authorID)
}

func (s *recipeService) Update(ctx context.Context, actorID, recipeID uint, in RecipeInput) (*RecipePayload, error) {
	recipe, err := s.getOwned(ctx, actorID, recipeID)
	if err != nil {
		return nil, err
	}
	norm, err := s.validateComposition(ctx, in)
	if err != nil {
		return nil, err
	}

	imageURL := recipe.Image
	if in.Image != "" {
		imageURL, err = s.images.Save("recipes", in.Image)
		if err != nil {
			return nil, err
		}
	}

	recipe.Name = in.Name
	recipe.Image = imageURL
	recipe.Text = in.Text
	recipe.CookingTime = in.CookingTime
	recipe.Tags = norm.tags
	recipe.RecipeIngredients = norm.ingredients
	if err := s.recipes.Update(ctx, recipe); err != nil {
		return nil, err
	}
	return s.Get(ctx, recipeID, actorID)
}

func (s *recipeService) Delete(ctx context.Context, actorID, recipeID uint) error {
	recipe, err := s.getOwned(ctx, actorID, recipeID)
	if err != nil {
		return err
	}
	if err := s.recipes.Delete(ctx, recipeID); err != nil {
		return err
	}
	s.links.Invalidate(ctx, recipe.ShortLinkHash)
	return nil
}

// getOwned loads the recipe and enforces that actor is its author.
// The not-found check runs first so non-owners of missing recipes get 404.
func (s *recipeService) getOwned(ctx context.Context, actorID, recipeID uint) (*model.Recipe, error) {
	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "recipe not found")
		}
		return nil, err
	}
	if recipe.AuthorID != actorID {
		return nil, apperr.New(apperr.KindForbidden, "only the author may modify a recipe")
	}
	return recipe, nil
}

func (s *recipeService) Get(ctx context.Context, recipeID, viewerID uint) (*RecipePayload, error) {
	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "recipe not found")
		}
		return nil, err
	}
	return s.buildPayload(ctx, recipe, viewerID)
}

func (s *recipeService) List(ctx context.Context, filter repository.RecipeFilter, offset, limit int) ([]RecipePayload, int64, error) {
	recipes, total, err := s.recipes.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	payloads := make([]RecipePayload, 0, len(recipes))
	for i := range recipes {
		p, err := s.buildPayload(ctx, &recipes[i], filter.UserID)
		if err != nil {
			return nil, 0, err
		}
		payloads = append(payloads, *p)
	}
	return payloads, total, nil
}

func (s *recipeService) buildPayload(ctx context.Context, recipe *model.Recipe, viewerID uint) (*RecipePayload, error) {
	var favorited, inCart, subscribed bool
	var err error
	if viewerID != 0 {
		if favorited, err = s.collections.Exists(ctx, model.CollectionFavorite, viewerID, recipe.ID); err != nil {
			return nil, err
		}
		if inCart, err = s.collections.Exists(ctx, model.CollectionShoppingCart, viewerID, recipe.ID); err != nil {
			return nil, err
		}
		if viewerID != recipe.AuthorID {
			if subscribed, err = s.subscriptions.Exists(ctx, viewerID, recipe.AuthorID); err != nil {
				return nil, err
			}
		}
	}

	ingredients := make([]RecipeIngredientPayload, len(recipe.RecipeIngredients))
	for i, ri := range recipe.RecipeIngredients {
		ingredients[i] = RecipeIngredientPayload{
			ID:              ri.IngredientID,
			Name:            ri.Ingredient.Name,
			MeasurementUnit: ri.Ingredient.MeasurementUnit,
			Amount:          ri.Amount,
		}
	}
	tags := recipe.Tags
	if tags == nil {
		tags = []model.Tag{}
	}

	return &RecipePayload{
		ID:               recipe.ID,
		Author:           newUserProfile(&recipe.Author, subscribed),
		Name:             recipe.Name,
		Image:            recipe.Image,
		Text:             recipe.Text,
		Ingredients:      ingredients,
		Tags:             tags,
		CookingTime:      recipe.CookingTime,
		IsFavorited:      favorited,
		IsInShoppingCart: inCart,
	}, nil
}

func (s *recipeService) ShortLink(ctx context.Context, recipeID uint) (string, error) {
	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.New(apperr.KindNotFound, "recipe not found")
		}
		return "", err
	}
	return s.linkBaseURL + recipe.ShortLinkHash, nil
}

func (s *recipeService) ResolveShortLink(ctx context.Context, hash string) (uint, error) {
	if id, ok := s.links.Get(ctx, hash); ok {
		return id, nil
	}
	recipe, err := s.recipes.GetByShortLink(ctx, hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.New(apperr.KindNotFound, "short link not found")
		}
		return 0, err
	}
	s.links.Set(ctx, hash, recipe.ID)
	return recipe.ID, nil
}

// generateShortLink draws random hashes until one is unused. Collisions are
// rare at 62^6 but the existence check still has to loop.
func (s *recipeService) generateShortLink(ctx context.Context) (string, error) {
	buf := make([]byte, model.ShortLinkLength)
	for {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		b := make([]byte, model.ShortLinkLength)
		for i := range buf {
			b[i] = shortLinkAlphabet[int(buf[i])%len(shortLinkAlphabet)]
		}
		hash := string(b)
		exists, err := s.recipes.ShortLinkExists(ctx, hash)
		if err != nil {
			return "", err
		}
		if !exists {
			return hash, nil
		}
	}
}
