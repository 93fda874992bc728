package handlers

import (
	"errors"
	"net/http"
	"pixfeed/internal/services"

	"github.com/gin-gonic/gin"
)

// JSONError maps a service error onto the API contract: a JSON object with a
// human-readable message and the matching status code. Anything outside the
// known kinds is a storage or I/O failure and surfaces as a generic 500,
// never the raw error text.
func JSONError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": "missing or invalid field"})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "you do not own this resource"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"message": "already exists"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}
}

// Fail is the shorthand for handler-level rejections with a specific message.
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}
