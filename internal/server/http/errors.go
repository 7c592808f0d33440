package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BharadwajRachakonda/todo-backend/internal/errs"
)

// respondError maps service sentinels to HTTP responses. Unknown errors are
// an opaque 500: the detail stays in the logs.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many attempts, try again later"})
	case errors.Is(err, errs.ErrInvalidCredentials):
		// one message for lookup misses and bad passwords
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login with right credentials"})
	case errors.Is(err, errs.ErrUnauthenticated), errors.Is(err, errs.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "please authenticate using a valid token"})
	case errors.Is(err, errs.ErrDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "you don't have access"})
	case errors.Is(err, errs.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}
