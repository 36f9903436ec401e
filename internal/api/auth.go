package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/holybond/holybond-v2/backend/internal/middleware"
	"github.com/holybond/holybond-v2/backend/internal/service"
	"github.com/holybond/holybond-v2/backend/internal/types"
)

// AuthHandler exposes registration, login, logout and the session view.
type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}

	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware(h.authService))
	{
		protected.POST("/auth/logout", h.Logout)
		protected.GET("/me", h.Me)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	account, profile, token, err := h.authService.Register(c.Request.Context(), req.Email, req.Password, &req.Profile)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":   token,
		"account": accountView(account),
		"profile": profile,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	account, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"account": accountView(account),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString("raw_token")
	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the current session.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"account_id": claims.AccountID,
		"profile_id": claims.ProfileID,
		"email":      claims.Email,
		"role":       claims.Role,
	})
}
