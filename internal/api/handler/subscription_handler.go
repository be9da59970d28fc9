package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/foodgram-backend/internal/api/middleware"
	"github.com/d60-Lab/foodgram-backend/pkg/response"
)

// Subscribe follows an author
// @Summary Subscribe to a user
// @Tags subscriptions
// @Param id path int true "author id"
// @Param recipes_limit query int false "max recipes in the payload"
// @Success 201 {object} service.AuthorPayload
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/users/{id}/subscribe/ [post]
func (h *Handler) Subscribe(c *gin.Context) {
	authorID := uintParam(c, "id")
	if authorID == 0 {
		response.NotFound(c, "user not found")
		return
	}
	payload, err := h.subscriptions.Subscribe(
		c.Request.Context(),
		middleware.CurrentUserID(c),
		authorID,
		recipesLimit(c),
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, payload)
}

// Unsubscribe unfollows an author
// @Summary Unsubscribe from a user
// @Tags subscriptions
// @Param id path int true "author id"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/users/{id}/subscribe/ [delete]
func (h *Handler) Unsubscribe(c *gin.Context) {
	authorID := uintParam(c, "id")
	if authorID == 0 {
		response.NotFound(c, "user not found")
		return
	}
	if err := h.subscriptions.Unsubscribe(c.Request.Context(), middleware.CurrentUserID(c), authorID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListSubscriptions pages through the authors the user follows
// @Summary List subscriptions
// @Tags subscriptions
// @Param page query int false "page" default(1)
// @Param limit query int false "page size"
// @Param recipes_limit query int false "max recipes per author"
// @Success 200 {object} response.Paginated
// @Router /api/users/subscriptions/ [get]
func (h *Handler) ListSubscriptions(c *gin.Context) {
	page, limit, offset := h.pageParams(c)
	payloads, total, err := h.subscriptions.ListSubscriptions(
		c.Request.Context(),
		middleware.CurrentUserID(c),
		offset, limit,
		recipesLimit(c),
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, paginated(c, total, page, limit, payloads))
}

// recipesLimit reads ?recipes_limit=; 0 means unlimited.
func recipesLimit(c *gin.Context) int {
	n, _ := strconv.Atoi(c.Query("recipes_limit"))
	if n < 0 {
		return 0
	}
	return n
}
