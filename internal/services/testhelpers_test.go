package services

import (
	"testing"

	"auction-house/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a per-test in-memory database. The DSN is named after
// the test so gorm's connection pool sees one shared memory DB per test
// instead of a fresh empty one per connection.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "failed to connect database")

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Listing{},
		&models.Bid{},
		&models.Comment{},
		&models.Watchlist{},
	)
	require.NoError(t, err, "failed to migrate database")

	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createCategory(t *testing.T, db *gorm.DB, name, slug string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name, Slug: slug}
	require.NoError(t, db.Create(category).Error)
	return category
}

func createListing(t *testing.T, db *gorm.DB, owner *models.User, category *models.Category, name, slug string, startBid decimal.Decimal) *models.Listing {
	t.Helper()

	listing := &models.Listing{
		CategoryID:  category.ID,
		UserID:      owner.ID,
		Name:        name,
		Slug:        slug,
		Description: "test listing",
		StartBid:    startBid,
		IsActive:    true,
	}
	require.NoError(t, db.Create(listing).Error)
	return listing
}
