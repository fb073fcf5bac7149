package services

import (
	"context"
	"fmt"

	"auction-house/internal/models"

	"gorm.io/gorm"
)

// CategoryCount is one bar of the listings-per-category breakdown.
type CategoryCount struct {
	Category      string `json:"category"`
	ListingsCount int64  `json:"listings_count"`
}

// PlatformSummary aggregates platform-wide totals.
type PlatformSummary struct {
	TotalListings  int64 `json:"total_listings"`
	ActiveListings int64 `json:"active_listings"`
	TotalBids      int64 `json:"total_bids"`
	TotalUsers     int64 `json:"total_users"`
}

// AnalyticsService computes the aggregations behind the dashboard.
type AnalyticsService struct {
	db *gorm.DB
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// ListingsPerCategory returns the number of listings in each category,
// ordered by category name. Categories with no listings are included.
func (s *AnalyticsService) ListingsPerCategory(ctx context.Context) ([]CategoryCount, error) {
	var counts []CategoryCount
	err := s.db.WithContext(ctx).
		Model(&models.Category{}).
		Select("categories.name AS category, COUNT(listings.id) AS listings_count").
		Joins("LEFT JOIN listings ON listings.category_id = categories.id").
		Group("categories.id, categories.name").
		Order("categories.name ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate categories: %w", err)
	}
	return counts, nil
}

// Summary returns platform-wide totals.
func (s *AnalyticsService) Summary(ctx context.Context) (*PlatformSummary, error) {
	var summary PlatformSummary

	if err := s.db.WithContext(ctx).Model(&models.Listing{}).Count(&summary.TotalListings).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Listing{}).Where("is_active = ?", true).Count(&summary.ActiveListings).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Bid{}).Count(&summary.TotalBids).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&summary.TotalUsers).Error; err != nil {
		return nil, err
	}

	return &summary, nil
}
