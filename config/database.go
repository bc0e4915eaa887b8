package config

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/geo-planner/api-go/models"
)

func ConnectDatabase() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=geoplanner dbname=geoplanner port=5432 sslmode=disable"
	}

	// TranslateError so unique-index violations surface as
	// gorm.ErrDuplicatedKey regardless of driver.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func InitDB() *gorm.DB {
	dbHost := os.Getenv("DB_HOST")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbPort := os.Getenv("DB_PORT")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		dbHost, dbUser, dbPassword, dbName, dbPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	MigrateModels(db)

	return db
}

// MigrateModels runs auto-migration for every entity table.
func MigrateModels(db *gorm.DB) {
	db.AutoMigrate(
		&models.User{},
		&models.Activity{},
		&models.Post{},
		&models.PostImage{},
		&models.Location{},
		&models.Like{},
		&models.Comment{},
		&models.Subscription{},
		&models.ConversationMessage{},
	)
}
