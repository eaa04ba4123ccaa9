package v1

import (
	"net/http"

	"go-learnlab-backend/internal/delivery/http/response"
	"go-learnlab-backend/internal/domain"
	"go-learnlab-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}

	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/register", handler.Register)
		publicAuth.POST("/login", handler.Login)
	}

	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.GET("/me", handler.Me)
		protectedAuth.POST("/refresh", handler.Refresh)
		protectedAuth.GET("/logout", handler.Logout)
		protectedAuth.PUT("/updatedetails", handler.UpdateDetails)
		protectedAuth.PUT("/updatepassword", handler.UpdatePassword)
	}
}

// currentUserID reads the authenticated user's id set by the auth middleware.
func currentUserID(c *gin.Context) int64 {
	v, _ := c.Get(string(domain.KeyUserID))
	id, _ := v.(int64)
	return id
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=student instructor"`
}

// Register godoc
// @Summary      User Registration
// @Description  Register a new account with name, email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register  body      RegisterRequest  true  "Registration Details"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user, token, err := h.authUC.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		c.Error(err)
		return
	}

	setAuthCookie(c, token)
	response.Success(c, http.StatusCreated, "Registration successful", gin.H{
		"token": token,
		"user":  user,
	})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary      User Login
// @Description  Login with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Login Credentials"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user, token, err := h.authUC.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	setAuthCookie(c, token)
	response.Success(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUC.GetCurrentUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User details", user)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	token, err := h.authUC.RefreshToken(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	setAuthCookie(c, token)
	response.Success(c, http.StatusOK, "Token refreshed", gin.H{"token": token})
}

// Logout clears the auth cookie. Bearer tokens stay valid until expiry; the
// client discards its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("auth_token", "", -1, "/", "", false, true)
	response.Success(c, http.StatusOK, "Logged out", nil)
}

type UpdateDetailsRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=2,max=50"`
	Email *string `json:"email" binding:"omitempty,email"`
}

func (h *AuthHandler) UpdateDetails(c *gin.Context) {
	var req UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user, err := h.authUC.UpdateDetails(c.Request.Context(), currentUserID(c), req.Name, req.Email)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Details updated", user)
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.authUC.UpdatePassword(c.Request.Context(), currentUserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Password updated", nil)
}

func setAuthCookie(c *gin.Context, token string) {
	// Secure flag follows the deployment; behind TLS termination the
	// X-Forwarded-Proto check is what matters.
	secure := c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https"
	c.SetCookie("auth_token", token, 60*60*24, "/", "", secure, true)
}
