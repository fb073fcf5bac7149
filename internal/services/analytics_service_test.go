package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingsPerCategory(t *testing.T) {
	db := setupTestDB(t)
	service := NewAnalyticsService(db)
	ctx := context.Background()

	owner := createUser(t, db, "seller")
	furniture := createCategory(t, db, "Furniture", "furniture")
	art := createCategory(t, db, "Art", "art")
	createCategory(t, db, "Empty", "empty")

	createListing(t, db, owner, furniture, "Chair", "chair_1", decimal.NewFromFloat(1.00))
	createListing(t, db, owner, furniture, "Table", "table_1", decimal.NewFromFloat(1.00))
	createListing(t, db, owner, art, "Print", "print_1", decimal.NewFromFloat(1.00))

	counts, err := service.ListingsPerCategory(ctx)
	require.NoError(t, err)
	require.Len(t, counts, 3)

	// Ordered by category name; empty categories still show up.
	assert.Equal(t, "Art", counts[0].Category)
	assert.Equal(t, int64(1), counts[0].ListingsCount)
	assert.Equal(t, "Empty", counts[1].Category)
	assert.Equal(t, int64(0), counts[1].ListingsCount)
	assert.Equal(t, "Furniture", counts[2].Category)
	assert.Equal(t, int64(2), counts[2].ListingsCount)
}

func TestPlatformSummary(t *testing.T) {
	db := setupTestDB(t)
	service := NewAnalyticsService(db)
	ctx := context.Background()

	owner := createUser(t, db, "seller")
	bidder := createUser(t, db, "buyer")
	category := createCategory(t, db, "Furniture", "furniture")
	active := createListing(t, db, owner, category, "Chair", "chair_1", decimal.NewFromFloat(1.00))
	closed := createListing(t, db, owner, category, "Table", "table_1", decimal.NewFromFloat(1.00))
	require.NoError(t, db.Model(closed).Update("is_active", false).Error)

	bids := NewBidService(db)
	_, err := bids.PlaceBid(ctx, active.ID, bidder.ID, decimal.NewFromFloat(2.00))
	require.NoError(t, err)

	summary, err := service.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.TotalListings)
	assert.Equal(t, int64(1), summary.ActiveListings)
	assert.Equal(t, int64(1), summary.TotalBids)
	assert.Equal(t, int64(2), summary.TotalUsers)
}
