package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/foodgram-backend/pkg/response"
)

// ListTags returns all tags, unpaginated
// @Summary List tags
// @Tags tags
// @Success 200 {array} model.Tag
// @Router /api/tags/ [get]
func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.reference.ListTags(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tags)
}

// GetTag returns one tag
// @Summary Get tag
// @Tags tags
// @Param id path int true "tag id"
// @Success 200 {object} model.Tag
// @Failure 404 {object} map[string]string
// @Router /api/tags/{id}/ [get]
func (h *Handler) GetTag(c *gin.Context) {
	id := uintParam(c, "id")
	if id == 0 {
		response.NotFound(c, "tag not found")
		return
	}
	tag, err := h.reference.GetTag(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tag)
}
