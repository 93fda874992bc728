package handlers

import (
	"net/http"
	"pixfeed/internal/db"
	"pixfeed/internal/models"
	"pixfeed/internal/services"
	"pixfeed/internal/utils"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct{}

func NewLikeHandler() *LikeHandler {
	return &LikeHandler{}
}

type likeRequest struct {
	IdentityKey string `json:"identityKey"`
}

// Toggle handles POST /posts/:key/likes: like if not yet liked, unlike
// otherwise, and report the resulting state.
func (h *LikeHandler) Toggle(c *gin.Context) {
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IdentityKey == "" {
		Fail(c, http.StatusBadRequest, "identityKey is required")
		return
	}

	postID := utils.StringToUint(c.Param("key"))
	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		Fail(c, http.StatusNotFound, "post not found")
		return
	}

	liked, err := services.ToggleLike(postID, utils.StringToUint(req.IdentityKey))
	if err != nil {
		JSONError(c, err)
		return
	}

	message := "unliked"
	if liked {
		message = "liked"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"liked":   liked,
	})
}
