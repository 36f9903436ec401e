package database

import (
	"log"

	"github.com/holybond/holybond-v2/backend/internal/models"
	"gorm.io/gorm"
)

// RunMigrations creates or updates the schema for every entity table.
// Uniqueness constraints (email, shortlist and block pairs) are declared
// on the models and become real indexes here.
func RunMigrations(db *gorm.DB) error {
	log.Printf("Running migrations (%s)", db.Dialector.Name())
	return db.AutoMigrate(
		&models.Account{},
		&models.Profile{},
		&models.ProfilePhoto{},
		&models.ShortlistEntry{},
		&models.Interest{},
		&models.Block{},
		&models.Report{},
		&models.ChatThread{},
		&models.ChatMessage{},
	)
}
