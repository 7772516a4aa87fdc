package models

import (
	"time"
)

// Recipe is the main catalog entity. Tags and ingredients are pure
// many-to-many associations with no link attributes; they may reference
// records owned by other users (existence is validated, ownership is not).
type Recipe struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	UserID      uint         `gorm:"not null;index" json:"-"`
	User        User         `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	TimeMinutes int          `json:"time_minutes"`
	Price       float64      `gorm:"type:decimal(5,2)" json:"price"`
	Link        string       `json:"link"`
	Image       string       `json:"image"`
	Tags        []Tag        `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE" json:"-"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time    `json:"-"`
	UpdatedAt   time.Time    `json:"-"`
}
