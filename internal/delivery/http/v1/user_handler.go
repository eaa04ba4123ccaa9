package v1

import (
	"net/http"
	"strconv"

	"go-learnlab-backend/internal/delivery/http/response"
	"go-learnlab-backend/internal/domain"
	"go-learnlab-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUC domain.UserUsecase
}

func NewUserHandler(protected *gin.RouterGroup, userUC domain.UserUsecase) {
	handler := &UserHandler{userUC: userUC}

	users := protected.Group("/users")
	{
		users.GET("/profile", handler.GetProfile)
		users.PUT("/profile", handler.UpdateProfile)
		users.GET("/stats", handler.GetStats)
		users.PUT("/stats", handler.UpdateStats)

		// Admin-only; the usecase enforces the role.
		users.GET("", handler.ListUsers)
		users.GET("/:id", handler.GetUser)
		users.PUT("/:id", handler.UpdateUser)
		users.DELETE("/:id", handler.DeleteUser)
	}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.userUC.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved", user)
}

type UpdateProfileRequest struct {
	Profile     domain.Document `json:"profile"`
	Preferences domain.Document `json:"preferences"`
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user, err := h.userUC.UpdateProfile(c.Request.Context(), currentUserID(c), req.Profile, req.Preferences)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", user)
}

func (h *UserHandler) GetStats(c *gin.Context) {
	stats, err := h.userUC.GetStats(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Stats retrieved", stats)
}

func (h *UserHandler) UpdateStats(c *gin.Context) {
	var req domain.StatsUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	stats, err := h.userUC.UpdateStats(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Stats updated", stats)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	page, limit := pagination(c)
	filter := domain.UserFilter{Role: c.Query("role")}
	if v := c.Query("isActive"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			c.Error(apperror.BadRequest("Invalid isActive parameter"))
			return
		}
		filter.IsActive = &active
	}

	users, total, err := h.userUC.ListUsers(c.Request.Context(), filter, page, limit)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Users retrieved", gin.H{
		"users": users,
		"total": total,
		"page":  page,
		"limit": limit,
		"pages": pageCount(total, limit),
	})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}

	user, err := h.userUC.GetUser(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User retrieved", user)
}

type AdminUpdateUserRequest struct {
	Name        *string         `json:"name" binding:"omitempty,min=2,max=50"`
	Email       *string         `json:"email" binding:"omitempty,email"`
	Role        *string         `json:"role" binding:"omitempty,oneof=student instructor admin"`
	IsActive    *bool           `json:"isActive"`
	Profile     domain.Document `json:"profile"`
	Preferences domain.Document `json:"preferences"`
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user, err := h.userUC.UpdateUser(c.Request.Context(), id, domain.UserUpdate{
		Name:        req.Name,
		Email:       req.Email,
		Role:        req.Role,
		IsActive:    req.IsActive,
		Profile:     req.Profile,
		Preferences: req.Preferences,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User updated", user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.userUC.DeleteUser(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User deleted", nil)
}
