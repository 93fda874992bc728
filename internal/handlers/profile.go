package handlers

import (
	"net/http"
	"pixfeed/internal/db"
	"pixfeed/internal/services"
	"pixfeed/internal/utils"
	"strings"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	blobs services.BlobStore
}

func NewProfileHandler(blobs services.BlobStore) *ProfileHandler {
	return &ProfileHandler{blobs: blobs}
}

const maxUploadBytes = 10 * 1024 * 1024

// UploadAvatar handles POST /accounts/:key/avatar (multipart image +
// identityKey). The previous avatar blob is left in place, matching how
// the store treats refs as append-only except for post cascades.
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		Fail(c, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	if c.PostForm("identityKey") == "" {
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

	key := c.Param("key")
	account, err := services.ResolveByKey(utils.StringToUint(key))
	if err != nil {
		JSONError(c, err)
		return
	}

	ref, err := h.blobs.Store(file, header, "avatar_"+key)
	if err != nil {
		JSONError(c, err)
		return
	}

	if err := db.DB.Model(account).Update("avatar_ref", ref).Error; err != nil {
		h.blobs.Delete(ref)
		JSONError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "avatar updated",
		"avatarRef": ref,
	})
}

type profileUpdate struct {
	IdentityKey string `json:"identityKey"`
	Biography   string `json:"biography"`
}

// UpdateProfile handles POST /accounts/:key/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req profileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.IdentityKey == "" {
		Fail(c, http.StatusBadRequest, "identityKey is required")
		return
	}

	account, err := services.ResolveByKey(utils.StringToUint(c.Param("key")))
	if err != nil {
		JSONError(c, err)
		return
	}

	account.Biography = utils.CleanText(req.Biography)
	if err := db.DB.Model(account).Update("biography", account.Biography).Error; err != nil {
		JSONError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "profile updated",
		"account": account,
	})
}
