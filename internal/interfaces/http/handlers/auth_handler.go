package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"growfin.backend/internal/domain/entities"
	domainerrors "growfin.backend/internal/domain/errors"
	"growfin.backend/internal/interfaces/http/middleware"
	"growfin.backend/internal/interfaces/http/response"
	"growfin.backend/internal/usecases"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase *usecases.AuthUsecase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase *usecases.AuthUsecase) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

// Login handles user login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"accessToken":  result.Tokens.AccessToken,
		"refreshToken": result.Tokens.RefreshToken,
		"userId":       result.UserID,
		"role":         result.Role,
		"name":         result.Name,
	})
}

// Me returns the authenticated user
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	user, err := h.authUsecase.Me(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

// CreateUser provisions a login
// POST /api/v1/admin/users
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var input entities.CreateUserInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	user, err := h.authUsecase.CreateUser(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "User created",
		"userId":  user.ID,
	})
}

// ListUsers lists users
// GET /api/v1/admin/users
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.authUsecase.ListUsers(c.Request.Context(), c.Query("role"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, users)
}
