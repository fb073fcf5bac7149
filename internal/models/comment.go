package models

import (
	"time"
)

// Comment represents a comment left on a listing
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	ListingID uint      `gorm:"not null;index" json:"listing_id"`
	Listing   *Listing  `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" json:"listing,omitempty"`
	Text      string    `gorm:"size:3000;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Comment model
func (Comment) TableName() string {
	return "comments"
}
