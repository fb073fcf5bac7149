package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Listing represents an item open for bidding
type Listing struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CategoryID  uint            `gorm:"not null;index" json:"category_id"`
	Category    *Category       `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"category,omitempty"`
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	User        *User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Name        string          `gorm:"size:250;not null" json:"name"`
	Slug        string          `gorm:"size:250;uniqueIndex;not null" json:"slug"`
	Description string          `gorm:"type:text" json:"description"`
	StartBid    decimal.Decimal `gorm:"type:decimal(9,2);not null" json:"start_bid"`
	Image       string          `gorm:"size:200" json:"image,omitempty"`
	IsActive    bool            `gorm:"default:true;index" json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName specifies the table name for Listing model
func (Listing) TableName() string {
	return "listings"
}

// AnnotatedListing is a listing row extended with the bid aggregates the
// repository computes at query level. MaxBid is nil when no bids exist.
type AnnotatedListing struct {
	Listing
	MaxBid     *decimal.Decimal `json:"max_bid,omitempty"`
	CurrentBid decimal.Decimal  `json:"current_bid"`
	BidCount   int64            `json:"bid_count"`
}
