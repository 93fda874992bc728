package services

import (
	"errors"
	"log"
	"pixfeed/internal/db"
	"pixfeed/internal/models"
	"pixfeed/internal/utils"

	"gorm.io/gorm"
)

// FeedFilter narrows the feed to one author and optionally carries the acting
// identity for per-viewer like state. All keys arrive as wire strings.
type FeedFilter struct {
	TargetKey    string // exact owning identity key
	TargetHandle string // full handle or local-part shorthand
	ActingKey    string // viewer, optional
}

// ListPosts assembles the feed view: posts newest first, each enriched with
// like count, the viewer's like state, the author's current avatar and the
// full ordered comment list.
//
// Filter resolution, first match wins: explicit identity key, then handle (or
// prefix) through the identity resolver, then no filter at all. A handle that
// resolves to nobody yields an empty feed, never an error.
func ListPosts(filter FeedFilter) ([]models.Post, error) {
	query := db.DB.Model(&models.Post{})

	if filter.TargetKey != "" {
		query = query.Where("account_id = ?", utils.StringToUint(filter.TargetKey))
	} else if filter.TargetHandle != "" {
		target, err := ResolveByHandle(filter.TargetHandle)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return make([]models.Post, 0), nil
			}
			return nil, err
		}
		query = query.Where("account_id = ?", target.ID)
	}

	posts := make([]models.Post, 0)
	if err := query.Order("created_at DESC, id DESC").Find(&posts).Error; err != nil {
		return nil, err
	}

	viewerID := utils.StringToUint(filter.ActingKey)

	for i := range posts {
		post := &posts[i]

		post.LikeCount = CountLikes(post.ID)
		if viewerID != 0 {
			post.IsLiked = HasLiked(post.ID, viewerID)
		}

		// Defensive lookup: AccountID is denormalized onto the post, so the
		// author could in principle be gone. Avatar stays null in that case.
		if author, err := ResolveByKey(post.AccountID); err == nil {
			avatar := author.AvatarRef
			post.AuthorAvatar = &avatar
		}

		comments, err := ListComments(post.ID)
		if err != nil {
			return nil, err
		}
		post.Comments = comments
	}

	return posts, nil
}

// CreatePost records a new post for an existing account. The author's handle
// is copied onto the row as a point-in-time snapshot; later handle edits do
// not touch it.
func CreatePost(actingKey, handle, caption, photoRef string) (*models.Post, error) {
	var account models.Account
	if err := db.DB.First(&account, utils.StringToUint(actingKey)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if handle == "" {
		handle = account.Handle
	}

	post := models.Post{
		AccountID: account.ID,
		Handle:    handle,
		Caption:   caption,
		PhotoRef:  photoRef,
	}
	if err := db.DB.Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost removes a post and everything hanging off it: likes first, then
// comments, then the media blob, then the row, all inside one transaction.
// Only the owner gets this far. The blob delete is best effort: a failed
// file removal is logged and the row cascade still commits.
func DeletePost(postID uint, actingKey string, blobs BlobStore) error {
	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := AssertOwner(post.AccountID, actingKey); err != nil {
		return err
	}

	return db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if post.PhotoRef != "" && blobs != nil {
			if !blobs.Delete(post.PhotoRef) {
				log.Printf("Blob delete failed for %s, continuing", post.PhotoRef)
			}
		}
		return tx.Delete(&post).Error
	})
}
