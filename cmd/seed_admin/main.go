package main

import (
	"context"
	"log"

	"github.com/holybond/holybond-v2/backend/config"
	"github.com/holybond/holybond-v2/backend/internal/database"
	"github.com/holybond/holybond-v2/backend/internal/service"
)

// Seeds the singleton admin account. Safe to run repeatedly.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	password := cfg.AdminPassword
	if password == "" {
		password = "Admin@123"
		log.Printf("ADMIN_PASSWORD not set, using development default")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	authService := service.NewAuthService(db, nil, cfg.JWTSecret)
	if err := authService.SeedAdmin(context.Background(), cfg.AdminEmail, password); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}
	log.Printf("Admin account ready (%s)", cfg.AdminEmail)
}
