package models

import (
	"time"
)

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"postKey"`
	AccountID uint      `gorm:"not null;index" json:"identityKey"`
	Account   Account   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Handle    string    `gorm:"size:120;not null" json:"handle"` // Author handle at posting time, not kept in sync
	PhotoRef  string    `gorm:"size:255" json:"photoRef"`
	Caption   string    `gorm:"type:text" json:"caption"`
	CreatedAt time.Time `json:"postedAt"`

	// Filled at query time, not stored
	LikeCount    int64     `gorm:"-" json:"like_count"`
	IsLiked      bool      `gorm:"-" json:"is_liked"`
	AuthorAvatar *string   `gorm:"-" json:"avatarRef"`
	Comments     []Comment `gorm:"-" json:"comments"`
}
