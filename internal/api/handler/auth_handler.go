package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/foodgram-backend/pkg/response"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login issues a bearer token
// @Summary Obtain auth token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "credentials"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /api/auth/token/login/ [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"auth_token": token})
}

// Logout revokes the presented token
// @Summary Revoke auth token
// @Tags auth
// @Success 204
// @Failure 401 {object} map[string]string
// @Router /api/auth/token/logout/ [post]
func (h *Handler) Logout(c *gin.Context) {
	raw := c.GetHeader("Authorization")
	for _, prefix := range []string{"Bearer ", "Token "} {
		raw = strings.TrimPrefix(raw, prefix)
	}
	if err := h.auth.Logout(c.Request.Context(), strings.TrimSpace(raw)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
