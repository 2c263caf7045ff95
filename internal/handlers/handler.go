package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"kitsustats-api/internal/algolia"
	"kitsustats-api/internal/auth"
	"kitsustats-api/internal/cache"
	"kitsustats-api/internal/models"
	"kitsustats-api/internal/realtime"

	"github.com/gin-gonic/gin"
)

// KeyProvider supplies the memoized search key.
type KeyProvider interface {
	UserKey(ctx context.Context) (algolia.UserKey, error)
}

// Handler carries the dependencies shared by the HTTP handlers.
type Handler struct {
	Cache             cache.Store[models.UserStats]
	Hub               *realtime.Hub
	Tokens            *auth.TokenManager
	Keys              KeyProvider
	AdminPasswordHash string
	// MaxBodyBytes caps cache write bodies; zero means no cap.
	MaxBodyBytes int64
}

// storageError writes the response for a cache failure.
func storageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cache.ErrInvalidUserID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
	case errors.Is(err, cache.ErrStorageQuotaExceeded):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Storage quota exceeded"})
	case errors.Is(err, cache.ErrStorageUnavailable):
		log.Println("user data cache:", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Storage unavailable"})
	default:
		log.Println("user data cache:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to access cached user data"})
	}
}
