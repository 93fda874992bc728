package handlers

import (
	"net/http"
	"pixfeed/internal/services"
	"pixfeed/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

type commentRequest struct {
	IdentityKey string `json:"identityKey"`
	Handle      string `json:"handle"`
	Body        string `json:"body"`
	ParentKey   *uint  `json:"parentKey"`
}

// Create handles POST /posts/:key/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.IdentityKey == "" || req.Body == "" {
		Fail(c, http.StatusBadRequest, "identityKey and body are required")
		return
	}

	accountID := utils.StringToUint(req.IdentityKey)
	account, err := services.ResolveByKey(accountID)
	if err != nil {
		Fail(c, http.StatusBadRequest, "unknown identityKey")
		return
	}

	// Denormalized handle snapshot; fall back to the current one
	handle := req.Handle
	if handle == "" {
		handle = account.Handle
	}

	comment, err := services.CreateComment(
		utils.StringToUint(c.Param("key")),
		accountID,
		handle,
		utils.CleanText(req.Body),
		req.ParentKey,
	)
	if err != nil {
		JSONError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "comment added",
		"comment": comment,
	})
}

// Delete handles DELETE /comments/:key?identityKey=
func (h *CommentHandler) Delete(c *gin.Context) {
	err := services.DeleteComment(utils.StringToUint(c.Param("key")), c.Query("identityKey"))
	if err != nil {
		JSONError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
