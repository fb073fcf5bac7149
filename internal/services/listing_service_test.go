package services

import (
	"context"
	"strings"
	"testing"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateListingAssignsSlug(t *testing.T) {
	db := setupTestDB(t)
	service := NewListingService(db, repository.NewListingRepository(db))
	ctx := context.Background()

	owner := createUser(t, db, "seller")
	category := createCategory(t, db, "Furniture", "furniture")

	listing, err := service.Create(ctx, owner.ID, CreateListingInput{
		CategoryID:  category.ID,
		Name:        "Chair",
		Description: "a chair",
		StartBid:    decimal.NewFromFloat(10.95),
	})
	require.NoError(t, err)

	assert.Equal(t, "chair_1", listing.Slug)
	assert.True(t, listing.IsActive)
	assert.Equal(t, owner.ID, listing.UserID)
}

// Slug sequence numbers are per category: a "Chair" in each of two
// categories, then a second "Chair" in the first, yields chair_2 there.
func TestCreateListingSlugSequencePerCategory(t *testing.T) {
	db := setupTestDB(t)
	service := NewListingService(db, repository.NewListingRepository(db))
	ctx := context.Background()

	owner := createUser(t, db, "seller")
	furniture := createCategory(t, db, "Furniture", "furniture")
	antiques := createCategory(t, db, "Antiques", "antiques")

	first, err := service.Create(ctx, owner.ID, CreateListingInput{
		CategoryID: furniture.ID, Name: "Chair", StartBid: decimal.NewFromFloat(1.00),
	})
	require.NoError(t, err)
	require.Equal(t, "chair_1", first.Slug)

	_, err = service.Create(ctx, owner.ID, CreateListingInput{
		CategoryID: antiques.ID, Name: "Chair", StartBid: decimal.NewFromFloat(1.00),
	})
	require.NoError(t, err)

	third, err := service.Create(ctx, owner.ID, CreateListingInput{
		CategoryID: furniture.ID, Name: "Chair", StartBid: decimal.NewFromFloat(1.00),
	})
	require.NoError(t, err)
	assert.Equal(t, "chair_2", third.Slug)
}

// A slug collision (concurrent create racing the category count) gets one
// retry with a random suffix instead of an error.
func TestCreateListingSlugCollisionRetry(t *testing.T) {
	db := setupTestDB(t)
	service := NewListingService(db, repository.NewListingRepository(db))
	ctx := context.Background()

	owner := createUser(t, db, "seller")
	category := createCategory(t, db, "Furniture", "furniture")

	// Occupy the slug the next create would pick (count is 1 after this,
	// but the row's slug was chosen as if it were the second listing).
	createListing(t, db, owner, category, "Chair", "chair_2", decimal.NewFromFloat(1.00))

	listing, err := service.Create(ctx, owner.ID, CreateListingInput{
		CategoryID: category.ID, Name: "Chair", StartBid: decimal.NewFromFloat(1.00),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(listing.Slug, "chair_2-"),
		"expected suffixed slug, got %s", listing.Slug)
}

func TestCreateListingRejectsTinyStartBid(t *testing.T) {
	db := setupTestDB(t)
	service := NewListingService(db, repository.NewListingRepository(db))
	ctx := context.Background()

	owner := createUser(t, db, "seller")
	category := createCategory(t, db, "Furniture", "furniture")

	_, err := service.Create(ctx, owner.ID, CreateListingInput{
		CategoryID: category.ID, Name: "Chair", StartBid: decimal.Zero,
	})
	require.ErrorIs(t, err, auctionerrors.ErrStartBidTooSmall)

	_, err = service.Create(ctx, owner.ID, CreateListingInput{
		CategoryID: category.ID, Name: "Chair", StartBid: decimal.NewFromFloat(-5.00),
	})
	require.ErrorIs(t, err, auctionerrors.ErrStartBidTooSmall)
}

func TestCreateListingUnknownCategory(t *testing.T) {
	db := setupTestDB(t)
	service := NewListingService(db, repository.NewListingRepository(db))

	owner := createUser(t, db, "seller")

	_, err := service.Create(context.Background(), owner.ID, CreateListingInput{
		CategoryID: 42, Name: "Chair", StartBid: decimal.NewFromFloat(1.00),
	})
	require.ErrorIs(t, err, auctionerrors.ErrCategoryNotFound)
}

func TestCloseListingLifecycle(t *testing.T) {
	db := setupTestDB(t)
	service := NewListingService(db, repository.NewListingRepository(db))
	ctx := context.Background()

	owner := createUser(t, db, "seller")
	stranger := createUser(t, db, "stranger")
	category := createCategory(t, db, "Furniture", "furniture")
	listing := createListing(t, db, owner, category, "Chair", "chair_1", decimal.NewFromFloat(1.00))

	// Non-owner close is a hard permission error, not a silent no-op.
	_, err := service.Close(ctx, listing.ID, stranger.ID)
	require.ErrorIs(t, err, auctionerrors.ErrPermissionDenied)

	closed, err := service.Close(ctx, listing.ID, owner.ID)
	require.NoError(t, err)
	assert.False(t, closed.IsActive)

	// Closing again is a no-op, not an error.
	again, err := service.Close(ctx, listing.ID, owner.ID)
	require.NoError(t, err)
	assert.False(t, again.IsActive)
}

func TestUpdateListingPermissions(t *testing.T) {
	db := setupTestDB(t)
	service := NewListingService(db, repository.NewListingRepository(db))
	ctx := context.Background()

	owner := createUser(t, db, "seller")
	stranger := createUser(t, db, "stranger")
	staff := createUser(t, db, "moderator")
	category := createCategory(t, db, "Furniture", "furniture")
	listing := createListing(t, db, owner, category, "Chair", "chair_1", decimal.NewFromFloat(1.00))

	newName := "Antique Chair"

	_, err := service.Update(ctx, listing.ID, stranger.ID, false, UpdateListingInput{Name: &newName})
	require.ErrorIs(t, err, auctionerrors.ErrPermissionDenied)

	updated, err := service.Update(ctx, listing.ID, owner.ID, false, UpdateListingInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)

	staffName := "Restored Chair"
	updated, err = service.Update(ctx, listing.ID, staff.ID, true, UpdateListingInput{Name: &staffName})
	require.NoError(t, err)
	assert.Equal(t, staffName, updated.Name)
}

func TestGetAnnotatedListing(t *testing.T) {
	db := setupTestDB(t)
	service := NewListingService(db, repository.NewListingRepository(db))
	ctx := context.Background()

	owner := createUser(t, db, "seller")
	bidder := createUser(t, db, "buyer")
	category := createCategory(t, db, "Furniture", "furniture")
	listing := createListing(t, db, owner, category, "Chair", "chair_1", decimal.NewFromFloat(10.95))

	bids := NewBidService(db)
	_, err := bids.PlaceBid(ctx, listing.ID, bidder.ID, decimal.NewFromFloat(11.00))
	require.NoError(t, err)

	annotated, err := service.Get(ctx, listing.ID)
	require.NoError(t, err)
	assert.True(t, annotated.CurrentBid.Equal(decimal.NewFromFloat(11.00)))
	assert.Equal(t, int64(1), annotated.BidCount)
	require.NotNil(t, annotated.MaxBid)
}
