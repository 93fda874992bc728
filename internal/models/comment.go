package models

import (
	"time"
)

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"commentKey"`
	PostID    uint      `gorm:"not null;index" json:"postKey"`
	Post      Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	AccountID uint      `gorm:"not null;index" json:"identityKey"`
	Account   Account   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ParentID  *uint     `gorm:"index" json:"parentKey"` // Nullable for top-level comments
	Handle    string    `gorm:"size:120;not null" json:"handle"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `json:"commentedAt"`
	// Deleting a parent does not cascade here: replies keep a dangling ParentID
}
