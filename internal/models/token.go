package models

import (
	"time"
)

// AuthToken maps an opaque token key to a user. A user holds at most one
// token; issuing again returns the existing key.
type AuthToken struct {
	Key       string `gorm:"primaryKey;size:40"`
	UserID    uint   `gorm:"uniqueIndex;not null"`
	User      User   `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}
