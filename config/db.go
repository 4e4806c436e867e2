package config

import (
	"log"
	"os"

	"github.com/glebarez/sqlite"
	"github.com/sortegrande/raffle-backend/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// SetupDatabase connects to the database and runs migrations. Postgres
// when DATABASE_URL is set; otherwise a local sqlite file so the raffle
// runs without any external service.
func SetupDatabase() *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	} else {
		path := os.Getenv("RAFFLE_DB")
		if path == "" {
			path = "raffle.db"
		}
		log.Printf("[INFO] DATABASE_URL not set, using sqlite file %s", path)
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	}
	if err != nil {
		log.Fatalf("[FATAL] Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.StateRecord{}); err != nil {
		log.Fatalf("[FATAL] AutoMigrate failed: %v", err)
	}

	DB = db
	return db
}
