package db

import (
	"log"
	"os"
	"pixfeed/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=pixfeed port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")
}

// Migrate applies the schema. Split out so tests can run it against their own
// gorm handle.
func Migrate(g *gorm.DB) error {
	return g.AutoMigrate(
		&models.Account{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
	)
}
