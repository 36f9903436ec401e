package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/holybond/holybond-v2/backend/config"
	"github.com/holybond/holybond-v2/backend/internal/middleware"
	"github.com/holybond/holybond-v2/backend/internal/service"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// HealthCheck returns the health status of the API.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "HolyBond API is running",
	})
}

// RegisterRoutes wires every handler under /api/v1. redisClient and
// s3Config may be nil; rate limiting and photo upload degrade accordingly.
func RegisterRoutes(router *gin.Engine, db *gorm.DB, authService *service.AuthService, redisClient *redis.Client, s3Config *config.S3Config) {
	router.GET("/health", HealthCheck)

	profileService := service.NewProfileService(db)
	photoService := service.NewPhotoService(db, s3Config)
	shortlistService := service.NewShortlistService(db)
	interestService := service.NewInterestService(db)
	blockService := service.NewBlockService(db)
	reportService := service.NewReportService(db)
	chatService := service.NewChatService(db)

	var interestLimiter, messageLimiter *middleware.RateLimiter
	if redisClient != nil {
		interestLimiter = middleware.NewInterestRateLimiter(redisClient)
		messageLimiter = middleware.NewChatMessageRateLimiter(redisClient)
	}

	v1 := router.Group("/api/v1")
	NewAuthHandler(authService).RegisterRoutes(v1)
	NewProfileHandler(profileService, photoService, authService).RegisterRoutes(v1)
	NewRelationshipHandler(shortlistService, interestService, blockService, reportService, authService, interestLimiter).RegisterRoutes(v1)
	NewChatHandler(chatService, authService, messageLimiter).RegisterRoutes(v1)
	NewAdminHandler(db, profileService, reportService, authService).RegisterRoutes(v1)
}
