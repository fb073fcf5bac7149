package models

// Category represents a listing category
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:80;not null" json:"name"`
	Slug string `gorm:"size:80;uniqueIndex;not null" json:"slug"`
}

// TableName specifies the table name for Category model
func (Category) TableName() string {
	return "categories"
}
