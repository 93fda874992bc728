package models

// Like records that an account liked a post. The composite primary key is the
// whole row: at most one like per (post, account), enforced by the store so
// concurrent duplicate inserts fail instead of doubling up.
type Like struct {
	PostID    uint `gorm:"primaryKey;autoIncrement:false" json:"postKey"`
	AccountID uint `gorm:"primaryKey;autoIncrement:false" json:"identityKey"`
}
