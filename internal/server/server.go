package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	appconfig "github.com/holybond/holybond-v2/backend/config"
	"github.com/holybond/holybond-v2/backend/internal/api"
	"github.com/holybond/holybond-v2/backend/internal/middleware"
	"github.com/holybond/holybond-v2/backend/internal/service"
)

// Server is the HTTP server with all routes wired.
type Server struct {
	router *gin.Engine
	http   *http.Server
	auth   *service.AuthService
}

// New builds the router and wires services. redisClient and s3Config may
// be nil in tests.
func New(cfg *appconfig.Config, db *gorm.DB, redisClient *redis.Client, s3Config *appconfig.S3Config) *Server {
	router := gin.Default()
	router.Use(middleware.CORS())

	authService := service.NewAuthService(db, redisClient, cfg.JWTSecret)
	api.RegisterRoutes(router, db, authService, redisClient, s3Config)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: router,
		},
		auth: authService,
	}
}

// Router exposes the underlying engine, used by tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// AuthService exposes the auth service for startup tasks like admin seeding.
func (s *Server) AuthService() *service.AuthService {
	return s.auth
}

// Start begins serving and blocks until the listener stops.
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
