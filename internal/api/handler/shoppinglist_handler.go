package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/foodgram-backend/internal/api/middleware"
	"github.com/d60-Lab/foodgram-backend/pkg/response"
)

// DownloadShoppingCart renders the aggregated shopping list as a PDF
// @Summary Download shopping list
// @Tags recipes
// @Produce application/pdf
// @Success 200 {file} binary
// @Failure 401 {object} map[string]string
// @Router /api/recipes/download_shopping_cart/ [get]
func (h *Handler) DownloadShoppingCart(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	items, err := h.shoppingList.Aggregate(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	profile, err := h.users.GetProfile(c.Request.Context(), userID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	pdf, err := h.shoppingList.RenderPDF(profile.Username, items)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename="shopping_cart_%s.pdf"`, profile.Username))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
