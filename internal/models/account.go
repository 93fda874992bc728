package models

import (
	"time"
)

type Account struct {
	ID        uint      `gorm:"primaryKey" json:"identityKey"`
	Handle    string    `gorm:"uniqueIndex;size:120;not null" json:"handle"` // Login identifier, usually email-shaped
	Password  string    `gorm:"size:255;not null" json:"-"`                  // Hash
	AvatarRef string    `gorm:"size:255" json:"avatarRef"`
	Biography string    `gorm:"size:500" json:"biography"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	// No DeletedAt: accounts are never removed in current scope
}
