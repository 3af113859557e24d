package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/knowligo/knowligo-backend/internal/http/response"
	"github.com/knowligo/knowligo-backend/internal/platform/apierr"
	"github.com/knowligo/knowligo-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	user, token, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"user": user, "token": token})
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"user": user, "token": token})
}

// POST /auth/oauth/callback
func (h *AuthHandler) OAuthCallback(c *gin.Context) {
	var req services.OAuthProfile
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	user, token, err := h.authService.UpsertOAuthUser(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"user": user, "token": token})
}

// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.CurrentUser(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, user)
}
