package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bid represents a single bid on a listing. Bids are append-only: there is
// no update or delete path, the bid history is the audit trail.
type Bid struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"not null;index" json:"user_id"`
	User      *User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	ListingID uint            `gorm:"not null;index" json:"listing_id"`
	Listing   *Listing        `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" json:"listing,omitempty"`
	Amount    decimal.Decimal `gorm:"type:decimal(19,2);not null" json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName specifies the table name for Bid model
func (Bid) TableName() string {
	return "bids"
}
