package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/foodgram-backend/internal/apperr"
	"github.com/d60-Lab/foodgram-backend/internal/model"
	"github.com/d60-Lab/foodgram-backend/internal/repository"
)

type SubscriptionService interface {
	// Subscribe creates the relation and returns the enriched author payload.
	// recipesLimit <= 0 means unlimited.
	Subscribe(ctx context.Context, userID, authorID uint, recipesLimit int) (*AuthorPayload, error)
	Unsubscribe(ctx context.Context, userID, authorID uint) error
	ListSubscriptions(ctx context.Context, userID uint, offset, limit, recipesLimit int) ([]AuthorPayload, int64, error)
}

type subscriptionService struct {
	subscriptions repository.SubscriptionRepository
	users         repository.UserRepository
	recipes       repository.RecipeRepository
}

func NewSubscriptionService(subscriptions repository.SubscriptionRepository, users repository.UserRepository, recipes repository.RecipeRepository) SubscriptionService {
	return &subscriptionService{subscriptions: subscriptions, users: users, recipes: recipes}
}

func (s *subscriptionService) Subscribe(ctx context.Context, userID, authorID uint, recipesLimit int) (*AuthorPayload, error) {
	// self check comes before any lookup
	if userID == authorID {
		return nil, apperr.New(apperr.KindSelfReferenceForbidden, "cannot subscribe to yourself")
	}
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "user not found")
		}
		return nil, err
	}
	if err := s.subscriptions.Create(ctx, userID, authorID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.New(apperr.KindAlreadyExists, "already subscribed to this user")
		}
		return nil, err
	}
	return s.buildAuthorPayload(ctx, author, true, recipesLimit)
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, userID, authorID uint) error {
	if _, err := s.users.GetByID(ctx, authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.KindNotFound, "user not found")
		}
		return err
	}
	removed, err := s.subscriptions.Delete(ctx, userID, authorID)
	if err != nil {
		return err
	}
	if !removed {
		return apperr.New(apperr.KindNotFound, "subscription does not exist")
	}
	return nil
}

func (s *subscriptionService) ListSubscriptions(ctx context.Context, userID uint, offset, limit, recipesLimit int) ([]AuthorPayload, int64, error) {
	authors, total, err := s.subscriptions.ListAuthors(ctx, userID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	payloads := make([]AuthorPayload, 0, len(authors))
	for i := range authors {
		p, err := s.buildAuthorPayload(ctx, &authors[i], true, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		payloads = append(payloads, *p)
	}
	return payloads, total, nil
}

func (s *subscriptionService) buildAuthorPayload(ctx context.Context, author *model.User, isSubscribed bool, recipesLimit int) (*AuthorPayload, error) {
	recipes, err := s.recipes.ListByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}
	count, err := s.recipes.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	return &AuthorPayload{
		UserProfile:  newUserProfile(author, isSubscribed),
		Recipes:      newRecipeShorts(recipes),
		RecipesCount: count,
	}, nil
}
