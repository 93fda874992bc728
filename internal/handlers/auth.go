package handlers

import (
	"net/http"
	"pixfeed/internal/db"
	"pixfeed/internal/models"
	"pixfeed/internal/services"
	"pixfeed/internal/utils"
	"strings"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type credentials struct {
	Handle string `json:"handle"`
	Secret string `json:"secret"`
}

// Register handles POST /accounts
func (h *AuthHandler) Register(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "handle and secret are required")
		return
	}

	req.Handle = strings.TrimSpace(req.Handle)
	if req.Handle == "" || req.Secret == "" {
		Fail(c, http.StatusBadRequest, "handle and secret are required")
		return
	}

	var existing models.Account
	if err := db.DB.Where("handle = ?", req.Handle).First(&existing).Error; err == nil {
		Fail(c, http.StatusConflict, "handle already registered")
		return
	}

	hash, err := utils.HashPassword(req.Secret)
	if err != nil {
		JSONError(c, err)
		return
	}

	account := models.Account{
		Handle:   req.Handle,
		Password: hash,
	}
	if err := db.DB.Create(&account).Error; err != nil {
		// The unique index still fires if a duplicate raced past the check
		Fail(c, http.StatusConflict, "handle already registered")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "account created"})
}

// Login handles POST /sessions. Unknown handle and wrong secret are
// deliberately indistinguishable.
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "handle and secret are required")
		return
	}

	if strings.TrimSpace(req.Handle) == "" || req.Secret == "" {
		Fail(c, http.StatusBadRequest, "handle and secret are required")
		return
	}

	var account models.Account
	if err := db.DB.Where("handle = ?", strings.TrimSpace(req.Handle)).First(&account).Error; err != nil {
		Fail(c, http.StatusUnauthorized, "invalid handle or secret")
		return
	}

	if !utils.CheckPasswordHash(req.Secret, account.Password) {
		Fail(c, http.StatusUnauthorized, "invalid handle or secret")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "login ok",
		"account": account,
	})
}

// Verify handles GET /sessions/verify?identityKey=, used by the front end
// to re-check a stored identity on reload.
func (h *AuthHandler) Verify(c *gin.Context) {
	key := c.Query("identityKey")
	if key == "" {
		Fail(c, http.StatusBadRequest, "identityKey is required")
		return
	}

	account, err := services.ResolveByKey(utils.StringToUint(key))
	if err != nil {
		JSONError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "valid account",
		"account": account,
	})
}
