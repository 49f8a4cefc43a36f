package db

import (
	"os"

	"github.com/Naurose/Project-GameVault/models"
	"github.com/Naurose/Project-GameVault/utils"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	if err := godotenv.Load(); err != nil {
		utils.Log.Warn("No .env file found, relying on environment")
	}
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost port=5432 user=postgres dbname=gamevault sslmode=disable"
	}

	var openErr error
	DB, openErr = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if openErr != nil {
		utils.Log.Fatal("failed to connect to the database: ", openErr)
	}

	migrateErr := DB.AutoMigrate(
		&models.User{},
		&models.Game{},
		&models.CartItem{},
		&models.LibraryEntry{},
		&models.Purchase{},
		&models.Review{},
		&models.NewsArticle{},
	)
	if migrateErr != nil {
		utils.Log.Fatal("failed to migrate: ", migrateErr)
	}

	utils.Log.Info("Database connected and migrated")
}
