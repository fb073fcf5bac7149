package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/internal/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BidService owns bid validation and the derived current price. The price is
// never stored: it is always max(start_bid, highest bid).
type BidService struct {
	db *gorm.DB
}

// NewBidService creates a new BidService
func NewBidService(db *gorm.DB) *BidService {
	return &BidService{db: db}
}

// CurrentPrice returns the effective price a new bid must exceed. maxBid is
// nil when the listing has no bids yet.
func CurrentPrice(startBid decimal.Decimal, maxBid *decimal.Decimal) decimal.Decimal {
	if maxBid != nil && maxBid.GreaterThan(startBid) {
		return *maxBid
	}
	return startBid
}

// PlaceBid validates and appends a bid. Validation and insert run in a
// serializable transaction: under read committed two overlapping bids could
// both read the same maximum, both pass the strict-increase check and both
// commit, since plain inserts never conflict. At serializable the later
// transaction fails instead of committing a bid that no longer exceeds the
// price.
func (s *BidService) PlaceBid(ctx context.Context, listingID, bidderID uint, amount decimal.Decimal) (*models.Bid, error) {
	var bid *models.Bid

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.Where("id = ?", listingID).First(&listing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return auctionerrors.ErrListingNotFound
			}
			return fmt.Errorf("failed to load listing: %w", err)
		}

		if !listing.IsActive {
			return auctionerrors.ErrListingClosed
		}

		if listing.UserID == bidderID {
			return auctionerrors.ErrOwnerCannotBid
		}

		maxBid, err := highestBid(tx, listingID)
		if err != nil {
			return err
		}

		// Strict inequality: a bid equal to the current price loses.
		if amount.LessThanOrEqual(CurrentPrice(listing.StartBid, maxBid)) {
			return auctionerrors.ErrBidTooLow
		}

		bid = &models.Bid{
			UserID:    bidderID,
			ListingID: listingID,
			Amount:    amount,
		}
		if err := tx.Create(bid).Error; err != nil {
			return fmt.Errorf("failed to create bid: %w", err)
		}
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	if err != nil {
		if errors.Is(err, auctionerrors.ErrBidTooLow) {
			utils.Warn("bid rejected", map[string]any{
				"listing_id": listingID,
				"user_id":    bidderID,
				"amount":     amount.String(),
			})
		}
		return nil, err
	}

	utils.Info("bid accepted", map[string]any{
		"listing_id": listingID,
		"user_id":    bidderID,
		"amount":     amount.String(),
	})

	return bid, nil
}

// ListForListing returns a listing's bids, highest first.
func (s *BidService) ListForListing(ctx context.Context, listingID uint, limit, offset int) ([]models.Bid, int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&models.Bid{}).
		Where("listing_id = ?", listingID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var bids []models.Bid
	err = s.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("amount DESC").
		Limit(limit).
		Offset(offset).
		Find(&bids).Error
	if err != nil {
		return nil, 0, err
	}

	return bids, total, nil
}

// ListForUser returns a user's bids, newest first.
func (s *BidService) ListForUser(ctx context.Context, userID uint, limit, offset int) ([]models.Bid, int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&models.Bid{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var bids []models.Bid
	err = s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Listing").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&bids).Error
	if err != nil {
		return nil, 0, err
	}

	return bids, total, nil
}

// highestBid returns the maximum bid amount on a listing, or nil if none.
func highestBid(tx *gorm.DB, listingID uint) (*decimal.Decimal, error) {
	var top models.Bid
	err := tx.Where("listing_id = ?", listingID).
		Order("amount DESC").
		First(&top).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read bids: %w", err)
	}
	return &top.Amount, nil
}
