package handlers

import (
	"net/http"
	"pixfeed/internal/db"
	"pixfeed/internal/models"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check handles GET /health. One query against the store proves the
// connection is alive.
func (h *HealthHandler) Check(c *gin.Context) {
	var count int64
	if err := db.DB.Model(&models.Account{}).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "database unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "success",
		"message":       "connected",
		"account_count": count,
	})
}
