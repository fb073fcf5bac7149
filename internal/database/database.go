package database

import (
	"fmt"
	"log"

	"auction-house/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect establishes a connection to the PostgreSQL database
func Connect(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
		// Unique violations must surface as gorm.ErrDuplicatedKey so the
		// watchlist toggle and the slug retry can recognise them.
		TranslateError: true,
	})

	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established successfully")
	return nil
}

// AutoMigrate runs automatic migrations for all models
func AutoMigrate() error {
	// Referenced tables first so foreign keys resolve
	identityModels := []interface{}{
		&models.User{},
		&models.Category{},
	}

	for _, model := range identityModels {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("migration failed for %T: %w", model, err)
		}
	}

	auctionModels := []interface{}{
		&models.Listing{},
		&models.Bid{},
		&models.Comment{},
		&models.Watchlist{},
	}

	for _, model := range auctionModels {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("migration failed for %T: %w", model, err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
