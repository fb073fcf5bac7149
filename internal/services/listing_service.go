package services

import (
	"context"
	"errors"
	"fmt"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var minStartBid = decimal.NewFromFloat(0.01)

// CreateListingInput carries the fields a listing is created from.
type CreateListingInput struct {
	CategoryID  uint
	Name        string
	Description string
	StartBid    decimal.Decimal
	Image       string
}

// UpdateListingInput carries the editable listing fields. Nil means keep.
type UpdateListingInput struct {
	Name        *string
	Description *string
	Image       *string
}

// ListingService owns the listing lifecycle: Active on creation, Closed is
// terminal.
type ListingService struct {
	db   *gorm.DB
	repo *repository.ListingRepository
}

// NewListingService creates a new ListingService
func NewListingService(db *gorm.DB, repo *repository.ListingRepository) *ListingService {
	return &ListingService{db: db, repo: repo}
}

// Create validates and persists a new active listing. The slug is the
// slugified name plus the listing's sequence number within its category;
// if a concurrent create grabs the same slug, one retry appends a short
// random suffix instead.
func (s *ListingService) Create(ctx context.Context, ownerID uint, input CreateListingInput) (*models.Listing, error) {
	if input.StartBid.LessThan(minStartBid) {
		return nil, auctionerrors.ErrStartBidTooSmall
	}

	var category models.Category
	if err := s.db.WithContext(ctx).Where("id = ?", input.CategoryID).First(&category).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, auctionerrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	count, err := s.repo.CountInCategory(ctx, category.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}

	listing := &models.Listing{
		CategoryID:  category.ID,
		UserID:      ownerID,
		Name:        input.Name,
		Slug:        utils.Slugify(fmt.Sprintf("%s_%d", input.Name, count+1)),
		Description: input.Description,
		StartBid:    input.StartBid,
		Image:       input.Image,
		IsActive:    true,
	}

	err = s.db.WithContext(ctx).Create(listing).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		listing.ID = 0
		listing.Slug = fmt.Sprintf("%s-%s", listing.Slug, uuid.NewString()[:8])
		err = s.db.WithContext(ctx).Create(listing).Error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	utils.Info("listing created", map[string]any{
		"listing_id": listing.ID,
		"slug":       listing.Slug,
		"user_id":    ownerID,
	})

	return listing, nil
}

// Update edits name/description/image. Owner or staff only. A closed listing
// stays closed; there is no reactivation path.
func (s *ListingService) Update(ctx context.Context, listingID, requesterID uint, isStaff bool, input UpdateListingInput) (*models.Listing, error) {
	var listing models.Listing
	if err := s.db.WithContext(ctx).Where("id = ?", listingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, auctionerrors.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to load listing: %w", err)
	}

	if listing.UserID != requesterID && !isStaff {
		return nil, auctionerrors.ErrPermissionDenied
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Image != nil {
		updates["image"] = *input.Image
	}

	if len(updates) == 0 {
		return &listing, nil
	}

	if err := s.db.WithContext(ctx).Model(&listing).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}

	return &listing, nil
}

// Close transitions a listing to its terminal state. Only the owner may
// close; closing an already-closed listing is a no-op.
func (s *ListingService) Close(ctx context.Context, listingID, requesterID uint) (*models.Listing, error) {
	var listing models.Listing
	if err := s.db.WithContext(ctx).Where("id = ?", listingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, auctionerrors.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to load listing: %w", err)
	}

	if listing.UserID != requesterID {
		return nil, auctionerrors.ErrPermissionDenied
	}

	if !listing.IsActive {
		return &listing, nil
	}

	if err := s.db.WithContext(ctx).Model(&listing).Update("is_active", false).Error; err != nil {
		return nil, fmt.Errorf("failed to close listing: %w", err)
	}
	listing.IsActive = false

	utils.Info("listing closed", map[string]any{
		"listing_id": listing.ID,
		"user_id":    requesterID,
	})

	return &listing, nil
}

// Get returns an annotated listing by ID.
func (s *ListingService) Get(ctx context.Context, listingID uint) (*models.AnnotatedListing, error) {
	return s.repo.GetByID(ctx, listingID)
}

// GetBySlug returns an annotated listing looked up by its slug.
func (s *ListingService) GetBySlug(ctx context.Context, slug string) (*models.AnnotatedListing, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// List returns annotated listings for a filter.
func (s *ListingService) List(ctx context.Context, filter repository.ListingFilter) ([]models.AnnotatedListing, int64, error) {
	return s.repo.Find(ctx, filter)
}

// InWatchlist reports whether the user currently watches the listing.
func (s *ListingService) InWatchlist(ctx context.Context, userID, listingID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Watchlist{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&count).Error
	return count > 0, err
}
