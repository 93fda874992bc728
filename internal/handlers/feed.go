package handlers

import (
	"errors"
	"net/http"
	"pixfeed/internal/services"
	"pixfeed/internal/utils"
	"strings"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	blobs services.BlobStore
}

func NewFeedHandler(blobs services.BlobStore) *FeedHandler {
	return &FeedHandler{blobs: blobs}
}

// List handles GET /posts?targetIdentityKey=&targetHandle=&identityKey=
func (h *FeedHandler) List(c *gin.Context) {
	posts, err := services.ListPosts(services.FeedFilter{
		TargetKey:    c.Query("targetIdentityKey"),
		TargetHandle: c.Query("targetHandle"),
		ActingKey:    c.Query("identityKey"),
	})
	if err != nil {
		JSONError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// Create handles POST /posts (multipart image + caption + identityKey +
// handle). The blob is written first; if the row insert then fails the blob
// is removed again so neither side is left orphaned.
func (h *FeedHandler) Create(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		Fail(c, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	identityKey := c.PostForm("identityKey")
	if identityKey == "" {
		Fail(c, http.StatusBadRequest, "identityKey is required")
		return
	}

	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		Fail(c, http.StatusBadRequest, "only image uploads are allowed")
		return
	}
	if header.Size > maxUploadBytes {
		Fail(c, http.StatusBadRequest, "image must be 10MB or smaller")
		return
	}

	ref, err := h.blobs.Store(file, header, "post")
	if err != nil {
		JSONError(c, err)
		return
	}

	caption := utils.CleanText(c.PostForm("caption"))
	post, err := services.CreatePost(identityKey, c.PostForm("handle"), caption, ref)
	if err != nil {
		h.blobs.Delete(ref)
		if errors.Is(err, services.ErrNotFound) {
			Fail(c, http.StatusBadRequest, "unknown identityKey")
			return
		}
		JSONError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "post created",
		"post":    post,
	})
}

// Delete handles DELETE /posts/:key?identityKey=
func (h *FeedHandler) Delete(c *gin.Context) {
	err := services.DeletePost(utils.StringToUint(c.Param("key")), c.Query("identityKey"), h.blobs)
	if err != nil {
		JSONError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}
