package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/holybond/holybond-v2/backend/internal/middleware"
	"github.com/holybond/holybond-v2/backend/internal/service"
	"github.com/holybond/holybond-v2/backend/internal/types"
)

// ChatHandler serves conversation threads and message sending.
type ChatHandler struct {
	chatService    *service.ChatService
	authService    *service.AuthService
	messageLimiter *middleware.RateLimiter
}

func NewChatHandler(chatService *service.ChatService, authService *service.AuthService, messageLimiter *middleware.RateLimiter) *ChatHandler {
	return &ChatHandler{
		chatService:    chatService,
		authService:    authService,
		messageLimiter: messageLimiter,
	}
}

func (h *ChatHandler) RegisterRoutes(router *gin.RouterGroup) {
	chat := router.Group("/chat")
	chat.Use(middleware.AuthMiddleware(h.authService))
	{
		chat.GET("/threads", h.ListThreads)
		chat.POST("/threads", h.OpenThread)
		chat.GET("/threads/:id", h.GetThread)
		if h.messageLimiter != nil {
			chat.POST("/threads/:id/messages", h.messageLimiter.Middleware(), h.SendMessage)
		} else {
			chat.POST("/threads/:id/messages", h.SendMessage)
		}
	}
}

func (h *ChatHandler) ListThreads(c *gin.Context) {
	threads, err := h.chatService.ListMyThreads(c.Request.Context(), middleware.GetClaims(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"threads": threads})
}

// OpenThread returns the thread with the given profile, creating it if
// this is the first contact in either direction.
func (h *ChatHandler) OpenThread(c *gin.Context) {
	var req types.OpenThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	thread, err := h.chatService.GetOrCreateThread(c.Request.Context(), middleware.GetClaims(c), req.ProfileID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, thread)
}

func (h *ChatHandler) GetThread(c *gin.Context) {
	threadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid thread id"})
		return
	}

	thread, err := h.chatService.GetThread(c.Request.Context(), middleware.GetClaims(c), threadID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, thread)
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	threadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid thread id"})
		return
	}

	var req types.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	message, err := h.chatService.SendMessage(c.Request.Context(), middleware.GetClaims(c), threadID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, message)
}
