package repository

import (
	"context"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"

	"gorm.io/gorm"
)

// Subqueries repeated instead of alias references so the projection stays
// valid on both PostgreSQL and SQLite. NULL max_bid (no bids) makes the CASE
// comparison falsy, so current_bid falls back to start_bid.
const annotatedColumns = `listings.*,
(SELECT MAX(b.amount) FROM bids b WHERE b.listing_id = listings.id) AS max_bid,
(SELECT COUNT(*) FROM bids b WHERE b.listing_id = listings.id) AS bid_count,
CASE WHEN (SELECT MAX(b.amount) FROM bids b WHERE b.listing_id = listings.id) > listings.start_bid
     THEN (SELECT MAX(b.amount) FROM bids b WHERE b.listing_id = listings.id)
     ELSE listings.start_bid END AS current_bid`

// orderings is the closed set of sort keys exposed to clients.
var orderings = map[string]string{
	"date_desc": "listings.created_at DESC",
	"date_asc":  "listings.created_at ASC",
	"name":      "listings.name ASC",
	"bid_desc":  "current_bid DESC",
	"bid_asc":   "current_bid ASC",
}

// Bid-state filter values.
const (
	BidFilterAll    = "all"
	BidFilterNoBids = "no_bids"
	BidFilterBids   = "bids"
)

// ListingFilter composes the listing query: flags and parameters not set are
// skipped. Sort falls back to date_desc for unknown keys.
type ListingFilter struct {
	ActiveOnly   bool
	CategorySlug string
	OwnerID      uint
	WatchedBy    uint
	Search       string
	BidFilter    string
	Sort         string
	Limit        int
	Offset       int
}

// ListingRepository builds annotated listing queries. Every read goes through
// the same max_bid/current_bid projection so point reads, filters and sorts
// agree on what the current price is.
type ListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) annotated(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Select(annotatedColumns)
}

// Find returns annotated listings matching the filter plus the total count
// before pagination.
func (r *ListingRepository) Find(ctx context.Context, filter ListingFilter) ([]models.AnnotatedListing, int64, error) {
	query := r.annotated(ctx)

	if filter.ActiveOnly {
		query = query.Where("listings.is_active = ?", true)
	}

	if filter.CategorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = listings.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}

	if filter.OwnerID != 0 {
		query = query.Where("listings.user_id = ?", filter.OwnerID)
	}

	if filter.WatchedBy != 0 {
		query = query.Joins("JOIN watchlists ON watchlists.listing_id = listings.id").
			Where("watchlists.user_id = ?", filter.WatchedBy)
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Joins("JOIN users ON users.id = listings.user_id").
			Where("LOWER(listings.name) LIKE LOWER(?) OR LOWER(listings.description) LIKE LOWER(?) OR LOWER(users.username) LIKE LOWER(?)",
				pattern, pattern, pattern)
	}

	switch filter.BidFilter {
	case BidFilterNoBids:
		query = query.Where("(SELECT MAX(b.amount) FROM bids b WHERE b.listing_id = listings.id) IS NULL")
	case BidFilterBids:
		query = query.Where("(SELECT MAX(b.amount) FROM bids b WHERE b.listing_id = listings.id) IS NOT NULL")
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	ordering, ok := orderings[filter.Sort]
	if !ok {
		ordering = orderings["date_desc"]
	}
	query = query.Order(ordering)

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var listings []models.AnnotatedListing
	if err := query.Scan(&listings).Error; err != nil {
		return nil, 0, err
	}

	return listings, total, nil
}

// GetByID returns a single annotated listing.
func (r *ListingRepository) GetByID(ctx context.Context, id uint) (*models.AnnotatedListing, error) {
	var listing models.AnnotatedListing
	err := r.annotated(ctx).Where("listings.id = ?", id).Scan(&listing).Error
	if err != nil {
		return nil, err
	}
	if listing.ID == 0 {
		return nil, auctionerrors.ErrListingNotFound
	}
	return &listing, nil
}

// GetBySlug returns a single annotated listing looked up by slug.
func (r *ListingRepository) GetBySlug(ctx context.Context, slug string) (*models.AnnotatedListing, error) {
	var listing models.AnnotatedListing
	err := r.annotated(ctx).Where("listings.slug = ?", slug).Scan(&listing).Error
	if err != nil {
		return nil, err
	}
	if listing.ID == 0 {
		return nil, auctionerrors.ErrListingNotFound
	}
	return &listing, nil
}

// CountInCategory returns how many listings exist in a category. Feeds the
// slug sequence number at creation time.
func (r *ListingRepository) CountInCategory(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Listing{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}
