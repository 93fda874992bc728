package services

import (
	"errors"
	"pixfeed/internal/db"
	"pixfeed/internal/models"

	"gorm.io/gorm"
)

// ToggleLike flips the like relation between an account and a post and
// reports the resulting state. The whole check-then-write runs in one
// transaction; the composite primary key on likes is the concurrency guard,
// so two concurrent toggles from the same account cannot both insert; the
// loser's Create fails and its transaction rolls back.
func ToggleLike(postID, accountID uint) (liked bool, err error) {
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Like
		findErr := tx.Where("post_id = ? AND account_id = ?", postID, accountID).First(&existing).Error
		if findErr == nil {
			liked = false
			return tx.Where("post_id = ? AND account_id = ?", postID, accountID).Delete(&models.Like{}).Error
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		liked = true
		return tx.Create(&models.Like{PostID: postID, AccountID: accountID}).Error
	})
	return liked, err
}

// CountLikes returns the number of accounts currently liking a post.
func CountLikes(postID uint) int64 {
	var count int64
	db.DB.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count)
	return count
}

// HasLiked reports whether an account currently likes a post. Callers with no
// acting identity must default to false instead of asking.
func HasLiked(postID, accountID uint) bool {
	var like models.Like
	if err := db.DB.Where("post_id = ? AND account_id = ?", postID, accountID).First(&like).Error; err == nil {
		return true
	}
	return false
}
