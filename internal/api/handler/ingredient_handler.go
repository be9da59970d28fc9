package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/foodgram-backend/pkg/response"
)

// ListIngredients returns ingredients, optionally filtered by name prefix
// @Summary List ingredients
// @Tags ingredients
// @Param name query string false "name prefix"
// @Success 200 {array} model.Ingredient
// @Router /api/ingredients/ [get]
func (h *Handler) ListIngredients(c *gin.Context) {
	ingredients, err := h.reference.ListIngredients(c.Request.Context(), c.Query("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, ingredients)
}

// GetIngredient returns one ingredient
// @Summary Get ingredient
// @Tags ingredients
// @Param id path int true "ingredient id"
// @Success 200 {object} model.Ingredient
// @Failure 404 {object} map[string]string
// @Router /api/ingredients/{id}/ [get]
func (h *Handler) GetIngredient(c *gin.Context) {
	id := uintParam(c, "id")
	if id == 0 {
		response.NotFound(c, "ingredient not found")
		return
	}
	ing, err := h.reference.GetIngredient(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, ing)
}
