package services

import (
	"errors"
	"pixfeed/internal/db"
	"pixfeed/internal/models"
	"strings"

	"gorm.io/gorm"
)

// ListComments returns a post's comments as a flat list in creation order.
// Threading is exposed only through each comment's ParentID; building a
// nested tree from the ordered list is the caller's business.
func ListComments(postID uint) ([]models.Comment, error) {
	comments := make([]models.Comment, 0)
	err := db.DB.Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}

// CreateComment attaches a comment to a post, optionally as a reply. A reply
// is only accepted if the parent comment exists at creation time.
func CreateComment(postID, accountID uint, handle, body string, parentID *uint) (*models.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrValidation
	}

	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if parentID != nil {
		var parent models.Comment
		if err := db.DB.First(&parent, *parentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
	}

	comment := models.Comment{
		PostID:    postID,
		AccountID: accountID,
		ParentID:  parentID,
		Handle:    handle,
		Body:      body,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes exactly one comment after the acting identity passes
// the ownership check. Replies are neither deleted nor relinked; they keep
// pointing at the now-missing parent key. That orphaning is the documented
// behavior, not an error.
func DeleteComment(commentID uint, actingKey string) error {
	var comment models.Comment
	if err := db.DB.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := AssertOwner(comment.AccountID, actingKey); err != nil {
		return err
	}

	return db.DB.Delete(&comment).Error
}
