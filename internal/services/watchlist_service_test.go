package services

import (
	"context"
	"testing"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Toggling twice returns to the original state: added, then removed.
func TestToggleWatchPairIdempotence(t *testing.T) {
	db := setupTestDB(t)
	service := NewWatchlistService(db, repository.NewListingRepository(db))
	ctx := context.Background()

	owner := createUser(t, db, "seller")
	watcher := createUser(t, db, "watcher")
	category := createCategory(t, db, "Furniture", "furniture")
	listing := createListing(t, db, owner, category, "Chair", "chair_1", decimal.NewFromFloat(1.00))

	result, err := service.Toggle(ctx, watcher.ID, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, ToggleAdded, result)

	result, err = service.Toggle(ctx, watcher.ID, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, ToggleRemoved, result)

	var count int64
	require.NoError(t, db.Model(&models.Watchlist{}).
		Where("user_id = ?", watcher.ID).Count(&count).Error)
	assert.Zero(t, count, "watchlist should be empty after an even number of toggles")
}

func TestToggleWatchOwnerRejected(t *testing.T) {
	db := setupTestDB(t)
	service := NewWatchlistService(db, repository.NewListingRepository(db))

	owner := createUser(t, db, "seller")
	category := createCategory(t, db, "Furniture", "furniture")
	listing := createListing(t, db, owner, category, "Chair", "chair_1", decimal.NewFromFloat(1.00))

	_, err := service.Toggle(context.Background(), owner.ID, listing.ID)
	require.ErrorIs(t, err, auctionerrors.ErrOwnerCannotWatch)
}

func TestToggleWatchUnknownListing(t *testing.T) {
	db := setupTestDB(t)
	service := NewWatchlistService(db, repository.NewListingRepository(db))

	user := createUser(t, db, "watcher")

	_, err := service.Toggle(context.Background(), user.ID, 9999)
	require.ErrorIs(t, err, auctionerrors.ErrListingNotFound)
}

func TestListWatchedReturnsAnnotatedListings(t *testing.T) {
	db := setupTestDB(t)
	service := NewWatchlistService(db, repository.NewListingRepository(db))
	ctx := context.Background()

	owner := createUser(t, db, "seller")
	watcher := createUser(t, db, "watcher")
	category := createCategory(t, db, "Furniture", "furniture")
	watched := createListing(t, db, owner, category, "Chair", "chair_1", decimal.NewFromFloat(10.00))
	createListing(t, db, owner, category, "Table", "table_1", decimal.NewFromFloat(20.00))

	_, err := service.Toggle(ctx, watcher.ID, watched.ID)
	require.NoError(t, err)

	listings, total, err := service.ListWatched(ctx, watcher.ID, repository.ListingFilter{Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, listings, 1)
	assert.Equal(t, watched.ID, listings[0].ID)
	assert.True(t, listings[0].CurrentBid.Equal(decimal.NewFromFloat(10.00)))
}

// The unique index rejects a duplicate pair outright; the service reports it
// as already present instead of failing the toggle.
func TestToggleWatchDuplicateInsertTreatedAsAdded(t *testing.T) {
	db := setupTestDB(t)
	service := NewWatchlistService(db, repository.NewListingRepository(db))

	owner := createUser(t, db, "seller")
	watcher := createUser(t, db, "watcher")
	category := createCategory(t, db, "Furniture", "furniture")
	listing := createListing(t, db, owner, category, "Chair", "chair_1", decimal.NewFromFloat(1.00))

	// A raw duplicate insert must violate the (user, listing) index.
	require.NoError(t, db.Create(&models.Watchlist{UserID: watcher.ID, ListingID: listing.ID}).Error)
	err := db.Create(&models.Watchlist{UserID: watcher.ID, ListingID: listing.ID}).Error
	require.Error(t, err, "unique index missing: duplicate watchlist rows allowed")

	// The toggle sees the existing entry and removes it.
	result, err := service.Toggle(context.Background(), watcher.ID, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, ToggleRemoved, result)
}
