package main

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"

	"github.com/holybond/holybond-v2/backend/config"
	"github.com/holybond/holybond-v2/backend/internal/database"
)

// waitForDB pings the database until it accepts connections, so the
// migrator can run before postgres finishes booting in compose setups.
func waitForDB(dsn string, attempts int) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	for i := 0; i < attempts; i++ {
		if err = db.Ping(); err == nil {
			return nil
		}
		log.Printf("Database not ready (%v), retrying...", err)
		time.Sleep(2 * time.Second)
	}
	return err
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := waitForDB(cfg.DatabaseDSN(), 15); err != nil {
		log.Fatalf("Database never became ready: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations applied")
}
