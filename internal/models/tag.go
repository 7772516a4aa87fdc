package models

// Tag is a free-text label owned by a single user
type Tag struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index" json:"-"`
	User   User   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name   string `gorm:"size:255;not null" json:"name"`
}
