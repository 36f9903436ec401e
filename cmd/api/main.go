package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/holybond/holybond-v2/backend/config"
	"github.com/holybond/holybond-v2/backend/internal/database"
	"github.com/holybond/holybond-v2/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Redis unavailable, rate limiting and token revocation degraded: %v", err)
		redisClient = nil
	}

	s3Config, err := config.NewS3Config(context.Background())
	if err != nil {
		log.Printf("Warning: S3 unavailable, photo upload disabled: %v", err)
		s3Config = nil
	}

	srv := server.New(cfg, db, redisClient, s3Config)

	// Bootstrap the singleton admin account.
	authService := srv.AuthService()
	if err := authService.SeedAdmin(context.Background(), cfg.AdminEmail, adminPassword(cfg)); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s:%s", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}

func adminPassword(cfg *config.Config) string {
	if cfg.AdminPassword != "" {
		return cfg.AdminPassword
	}
	// Development fallback only; production requires ADMIN_PASSWORD.
	return "Admin@123"
}
