package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/foodgram-backend/internal/api/middleware"
	"github.com/d60-Lab/foodgram-backend/internal/service"
	"github.com/d60-Lab/foodgram-backend/pkg/response"
)

type registerRequest struct {
	Email     string `json:"email" binding:"required,email,max=254"`
	Username  string `json:"username" binding:"required,max=150"`
	FirstName string `json:"first_name" binding:"required,max=150"`
	LastName  string `json:"last_name" binding:"required,max=150"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
}

// Register creates a new user
// @Summary Register user
// @Tags users
// @Accept json
// @Produce json
// @Param request body registerRequest true "new user"
// @Success 201 {object} service.UserProfile
// @Failure 400 {object} map[string]string
// @Router /api/users/ [post]
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	profile, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, profile)
}

// ListUsers pages through all users
// @Summary List users
// @Tags users
// @Param page query int false "page" default(1)
// @Param limit query int false "page size"
// @Success 200 {object} response.Paginated
// @Router /api/users/ [get]
func (h *Handler) ListUsers(c *gin.Context) {
	page, limit, offset := h.pageParams(c)
	profiles, total, err := h.users.ListProfiles(c.Request.Context(), middleware.CurrentUserID(c), offset, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, paginated(c, total, page, limit, profiles))
}

// GetUser returns one user profile
// @Summary Get user
// @Tags users
// @Param id path int true "user id"
// @Success 200 {object} service.UserProfile
// @Failure 404 {object} map[string]string
// @Router /api/users/{id}/ [get]
func (h *Handler) GetUser(c *gin.Context) {
	id := uintParam(c, "id")
	if id == 0 {
		response.NotFound(c, "user not found")
		return
	}
	profile, err := h.users.GetProfile(c.Request.Context(), id, middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

// Me returns the authenticated user's profile
// @Summary Current user
// @Tags users
// @Success 200 {object} service.UserProfile
// @Failure 401 {object} map[string]string
// @Router /api/users/me/ [get]
func (h *Handler) Me(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	profile, err := h.users.GetProfile(c.Request.Context(), userID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

type setPasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=128"`
}

// SetPassword changes the current user's password
// @Summary Change password
// @Tags users
// @Param request body setPasswordRequest true "passwords"
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /api/users/set_password/ [post]
func (h *Handler) SetPassword(c *gin.Context) {
	var req setPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.users.SetPassword(c.Request.Context(), middleware.CurrentUserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

type avatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

// SetAvatar stores a base64 data-URI avatar
// @Summary Set avatar
// @Tags users
// @Param request body avatarRequest true "base64 image"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /api/users/me/avatar/ [put]
func (h *Handler) SetAvatar(c *gin.Context) {
	var req avatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "avatar: this field is required")
		return
	}
	url, err := h.users.SetAvatar(c.Request.Context(), middleware.CurrentUserID(c), req.Avatar)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"avatar": url})
}

// DeleteAvatar clears the current avatar
// @Summary Delete avatar
// @Tags users
// @Success 204
// @Router /api/users/me/avatar/ [delete]
func (h *Handler) DeleteAvatar(c *gin.Context) {
	if err := h.users.DeleteAvatar(c.Request.Context(), middleware.CurrentUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
