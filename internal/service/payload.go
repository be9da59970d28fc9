package service

import (
	"github.com/d60-Lab/foodgram-backend/internal/model"
)

// UserProfile is the user representation returned by every user-facing
// endpoint. IsSubscribed is relative to the requesting user.
type UserProfile struct {
	ID           uint    `json:"id"`
	Email        string  `json:"email"`
	Username     string  `json:"username"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	IsSubscribed bool    `json:"is_subscribed"`
	Avatar       *string `json:"avatar"`
}

// RecipeShort is the minified recipe projection used in membership and
// subscription responses.
type RecipeShort struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// RecipeIngredientPayload flattens the join row with the resolved ingredient.
type RecipeIngredientPayload struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type RecipePayload struct {
	ID                uint                      `json:"id"`
	Author            UserProfile               `json:"author"`
	Name              string                    `json:"name"`
	Image             string                    `json:"image"`
	Text              string                    `json:"text"`
	Ingredients       []RecipeIngredientPayload `json:"ingredients"`
	Tags              []model.Tag               `json:"tags"`
	CookingTime       int                       `json:"cooking_time"`
	IsFavorited       bool                      `json:"is_favorited"`
	IsInShoppingCart  bool                      `json:"is_in_shopping_cart"`
}

// AuthorPayload is the subscription representation: the author's profile
// enriched with their recipes and recipe count.
type AuthorPayload struct {
	UserProfile
	Recipes      []RecipeShort `json:"recipes"`
	RecipesCount int64         `json:"recipes_count"`
}

func newUserProfile(u *model.User, isSubscribed bool) UserProfile {
	return UserProfile{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: isSubscribed,
		Avatar:       u.Avatar,
	}
}

func newRecipeShort(r *model.Recipe) RecipeShort {
	return RecipeShort{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}

func newRecipeShorts(recipes []model.Recipe) []RecipeShort {
	out := make([]RecipeShort, len(recipes))
	for i := range recipes {
		out[i] = newRecipeShort(&recipes[i])
	}
	return out
}
