package services

import (
	"context"
	"errors"
	"fmt"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/internal/repository"

	"gorm.io/gorm"
)

// ToggleResult reports which way a watchlist toggle went.
type ToggleResult string

const (
	ToggleAdded   ToggleResult = "added"
	ToggleRemoved ToggleResult = "removed"
)

// WatchlistService manages the per-user set of tracked listings.
type WatchlistService struct {
	db   *gorm.DB
	repo *repository.ListingRepository
}

// NewWatchlistService creates a new WatchlistService
func NewWatchlistService(db *gorm.DB, repo *repository.ListingRepository) *WatchlistService {
	return &WatchlistService{db: db, repo: repo}
}

// Toggle adds the listing to the user's watchlist if absent and removes it if
// present. Owners cannot watch their own listings. A concurrent duplicate
// insert trips the (user, listing) unique index and is treated as already
// present rather than an error.
func (s *WatchlistService) Toggle(ctx context.Context, userID, listingID uint) (ToggleResult, error) {
	var listing models.Listing
	if err := s.db.WithContext(ctx).Where("id = ?", listingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", auctionerrors.ErrListingNotFound
		}
		return "", fmt.Errorf("failed to load listing: %w", err)
	}

	if listing.UserID == userID {
		return "", auctionerrors.ErrOwnerCannotWatch
	}

	var entry models.Watchlist
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		First(&entry).Error

	if err == nil {
		if err := s.db.WithContext(ctx).Delete(&entry).Error; err != nil {
			return "", fmt.Errorf("failed to remove watchlist entry: %w", err)
		}
		return ToggleRemoved, nil
	}
	if err != gorm.ErrRecordNotFound {
		return "", fmt.Errorf("failed to read watchlist: %w", err)
	}

	entry = models.Watchlist{UserID: userID, ListingID: listingID}
	err = s.db.WithContext(ctx).Create(&entry).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost a race with another toggle from the same user; the entry
		// exists, which is what "added" means.
		return ToggleAdded, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to add watchlist entry: %w", err)
	}

	return ToggleAdded, nil
}

// ListWatched returns the annotated listings on a user's watchlist.
func (s *WatchlistService) ListWatched(ctx context.Context, userID uint, filter repository.ListingFilter) ([]models.AnnotatedListing, int64, error) {
	filter.WatchedBy = userID
	return s.repo.Find(ctx, filter)
}
