package handler

import (
	"github.com/d60-Lab/foodgram-backend/internal/service"
)

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	auth          service.AuthService
	users         service.UserService
	reference     service.ReferenceService
	recipes       service.RecipeService
	collections   service.CollectionService
	subscriptions service.SubscriptionService
	shoppingList  service.ShoppingListService

	defaultPageSize int
	frontendBaseURL string // target prefix for short-link redirects
}

type Options struct {
	DefaultPageSize int
	FrontendBaseURL string
}

func NewHandler(
	auth service.AuthService,
	users service.UserService,
	reference service.ReferenceService,
	recipes service.RecipeService,
	collections service.CollectionService,
	subscriptions service.SubscriptionService,
	shoppingList service.ShoppingListService,
	opts Options,
) *Handler {
	if opts.DefaultPageSize <= 0 {
		opts.DefaultPageSize = 6
	}
	return &Handler{
		auth:            auth,
		users:           users,
		reference:       reference,
		recipes:         recipes,
		collections:     collections,
		subscriptions:   subscriptions,
		shoppingList:    shoppingList,
		defaultPageSize: opts.DefaultPageSize,
		frontendBaseURL: opts.FrontendBaseURL,
	}
}
