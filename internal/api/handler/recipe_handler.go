package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/foodgram-backend/internal/api/middleware"
	"github.com/d60-Lab/foodgram-backend/internal/model"
	"github.com/d60-Lab/foodgram-backend/internal/repository"
	"github.com/d60-Lab/foodgram-backend/internal/service"
	"github.com/d60-Lab/foodgram-backend/pkg/response"
)

type recipeRequest struct {
	Name        string                          `json:"name" binding:"required,max=256"`
	Image       string                          `json:"image"`
	Text        string                          `json:"text"`
	CookingTime int                             `json:"cooking_time"`
	Ingredients []service.IngredientAmountInput `json:"ingredients"`
	Tags        []uint                          `json:"tags"`
}

func (r recipeRequest) toInput() service.RecipeInput {
	return service.RecipeInput{
		Name:        r.Name,
		Image:       r.Image,
		Text:        r.Text,
		CookingTime: r.CookingTime,
		Ingredients: r.Ingredients,
		TagIDs:      r.Tags,
	}
}

// ListRecipes pages through recipes with the standard filters
// @Summary List recipes
// @Tags recipes
// @Param page query int false "page" default(1)
// @Param limit query int false "page size"
// @Param author query int false "author id"
// @Param tags query []string false "tag slugs" collectionFormat(multi)
// @Param is_favorited query string false "1/0"
// @Param is_in_shopping_cart query string false "1/0"
// @Success 200 {object} response.Paginated
// @Router /api/recipes/ [get]
func (h *Handler) ListRecipes(c *gin.Context) {
	page, limit, offset := h.pageParams(c)
	filter := repository.RecipeFilter{
		TagSlugs: c.QueryArray("tags"),
		UserID:   middleware.CurrentUserID(c),
	}
	if v := c.Query("author"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			aid := uint(id)
			filter.AuthorID = &aid
		}
	}
	filter.Favorited = boolFlag(c.Query("is_favorited"))
	filter.InCart = boolFlag(c.Query("is_in_shopping_cart"))

	payloads, total, err := h.recipes.List(c.Request.Context(), filter, offset, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, paginated(c, total, page, limit, payloads))
}

// GetRecipe returns one recipe in full
// @Summary Get recipe
// @Tags recipes
// @Param id path int true "recipe id"
// @Success 200 {object} service.RecipePayload
// @Failure 404 {object} map[string]string
// @Router /api/recipes/{id}/ [get]
func (h *Handler) GetRecipe(c *gin.Context) {
	id := uintParam(c, "id")
	if id == 0 {
		response.NotFound(c, "recipe not found")
		return
	}
	payload, err := h.recipes.Get(c.Request.Context(), id, middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, payload)
}

// CreateRecipe validates and persists a new recipe
// @Summary Create recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Param request body recipeRequest true "recipe"
// @Success 201 {object} service.RecipePayload
// @Failure 400 {object} map[string]string
// @Router /api/recipes/ [post]
func (h *Handler) CreateRecipe(c *gin.Context) {
	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	payload, err := h.recipes.Create(c.Request.Context(), middleware.CurrentUserID(c), req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, payload)
}

// UpdateRecipe replaces a recipe's fields and association lists
// @Summary Update recipe
// @Tags recipes
// @Param id path int true "recipe id"
// @Param request body recipeRequest true "full replacement"
// @Success 200 {object} service.RecipePayload
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/recipes/{id}/ [patch]
func (h *Handler) UpdateRecipe(c *gin.Context) {
	id := uintParam(c, "id")
	if id == 0 {
		response.NotFound(c, "recipe not found")
		return
	}
	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	payload, err := h.recipes.Update(c.Request.Context(), middleware.CurrentUserID(c), id, req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, payload)
}

// DeleteRecipe removes a recipe
// @Summary Delete recipe
// @Tags recipes
// @Param id path int true "recipe id"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/recipes/{id}/ [delete]
func (h *Handler) DeleteRecipe(c *gin.Context) {
	id := uintParam(c, "id")
	if id == 0 {
		response.NotFound(c, "recipe not found")
		return
	}
	if err := h.recipes.Delete(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// GetShortLink returns the compact redirect URL for a recipe
// @Summary Get short link
// @Tags recipes
// @Param id path int true "recipe id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/recipes/{id}/get-link/ [get]
func (h *Handler) GetShortLink(c *gin.Context) {
	id := uintParam(c, "id")
	if id == 0 {
		response.NotFound(c, "recipe not found")
		return
	}
	link, err := h.recipes.ShortLink(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"short-link": link})
}

// ResolveShortLink redirects a 6-char hash to the recipe page
// @Summary Short link redirect
// @Tags recipes
// @Param hash path string true "short link hash"
// @Success 302
// @Failure 404 {object} map[string]string
// @Router /s/{hash} [get]
func (h *Handler) ResolveShortLink(c *gin.Context) {
	id, err := h.recipes.ResolveShortLink(c.Request.Context(), c.Param("hash"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("%s/recipes/%d/", h.frontendBaseURL, id))
}

// Favorite adds a recipe to the user's favorites
// @Summary Favorite recipe
// @Tags recipes
// @Param id path int true "recipe id"
// @Success 201 {object} service.RecipeShort
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/recipes/{id}/favorite/ [post]
func (h *Handler) Favorite(c *gin.Context) {
	h.addToCollection(c, model.CollectionFavorite)
}

// Unfavorite removes a recipe from the user's favorites
// @Summary Unfavorite recipe
// @Tags recipes
// @Param id path int true "recipe id"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/recipes/{id}/favorite/ [delete]
func (h *Handler) Unfavorite(c *gin.Context) {
	h.removeFromCollection(c, model.CollectionFavorite)
}

// AddToShoppingCart queues a recipe for the shopping list
// @Summary Add recipe to shopping cart
// @Tags recipes
// @Param id path int true "recipe id"
// @Success 201 {object} service.RecipeShort
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/recipes/{id}/shopping_cart/ [post]
func (h *Handler) AddToShoppingCart(c *gin.Context) {
	h.addToCollection(c, model.CollectionShoppingCart)
}

// RemoveFromShoppingCart removes a recipe from the cart
// @Summary Remove recipe from shopping cart
// @Tags recipes
// @Param id path int true "recipe id"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/recipes/{id}/shopping_cart/ [delete]
func (h *Handler) RemoveFromShoppingCart(c *gin.Context) {
	h.removeFromCollection(c, model.CollectionShoppingCart)
}

func (h *Handler) addToCollection(c *gin.Context, kind model.CollectionKind) {
	id := uintParam(c, "id")
	if id == 0 {
		response.NotFound(c, "recipe not found")
		return
	}
	short, err := h.collections.Add(c.Request.Context(), kind, middleware.CurrentUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, short)
}

func (h *Handler) removeFromCollection(c *gin.Context, kind model.CollectionKind) {
	id := uintParam(c, "id")
	if id == 0 {
		response.NotFound(c, "recipe not found")
		return
	}
	if err := h.collections.Remove(c.Request.Context(), kind, middleware.CurrentUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// boolFlag parses the 1/0/true/false filter values; nil means unset.
func boolFlag(v string) *bool {
	switch v {
	case "1", "true", "True":
		t := true
		return &t
	case "0", "false", "False":
		f := false
		return &f
	default:
		return nil
	}
}
