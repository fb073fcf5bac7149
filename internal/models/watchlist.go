package models

import (
	"time"
)

// Watchlist represents a single tracked (user, listing) pair. The unique
// index makes concurrent duplicate toggles collapse into one row.
type Watchlist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_watchlist_user_listing" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	ListingID uint      `gorm:"not null;uniqueIndex:idx_watchlist_user_listing" json:"listing_id"`
	Listing   *Listing  `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" json:"listing,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Watchlist model
func (Watchlist) TableName() string {
	return "watchlists"
}
