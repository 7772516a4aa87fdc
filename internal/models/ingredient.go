package models

// Ingredient is a free-text recipe component owned by a single user
type Ingredient struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index" json:"-"`
	User   User   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name   string `gorm:"size:255;not null" json:"name"`
}
