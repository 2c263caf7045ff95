package handlers

import (
	"errors"
	"net/http"

	"kitsustats-api/internal/kitsu"
	"kitsustats-api/internal/models"
	"kitsustats-api/internal/realtime"

	"github.com/gin-gonic/gin"
)

// ListUserKeys handles GET /api/cache/users
func (h *Handler) ListUserKeys(c *gin.Context) {
	keys, err := h.Cache.Keys(c.Request.Context())
	if err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"keys":  keys,
		"count": len(keys),
	})
}

// ListEntries handles GET /api/cache/entries
// Keys and records come from one read, so they always pair up.
func (h *Handler) ListEntries(c *gin.Context) {
	entries, err := h.Cache.Entries(c.Request.Context())
	if err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}

/*
GetUserData handles GET /api/cache/users/:userId
Optional query param: type (anime|manga) to keep only library entries of that media type.
*/
func (h *Handler) GetUserData(c *gin.Context) {
	userID := c.Param("userId")

	stats, ok, err := h.Cache.Get(c.Request.Context(), userID)
	if err != nil {
		storageError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No cached data for user"})
		return
	}

	if mediaType := c.Query("type"); mediaType != "" {
		switch models.MediaType(mediaType) {
		case models.MediaAnime, models.MediaManga:
			stats.LibraryEntries = kitsu.FilterLibraryEntriesForType(stats.LibraryEntries, models.MediaType(mediaType))
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "type must be anime or manga"})
			return
		}
	}

	c.JSON(http.StatusOK, stats)
}

// PutUserData handles PUT /api/cache/users/:userId
// The body fully replaces any cached snapshot for the user.
func (h *Handler) PutUserData(c *gin.Context) {
	userID := c.Param("userId")

	if h.MaxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxBodyBytes)
	}

	var stats models.UserStats
	if err := c.ShouldBindJSON(&stats); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if stats.UserID != "" && stats.UserID != userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId in body does not match path"})
		return
	}
	stats.UserID = userID
	kitsu.NormalizeStats(&stats)

	if err := h.Cache.Set(c.Request.Context(), userID, stats); err != nil {
		storageError(c, err)
		return
	}

	h.Hub.Publish(realtime.Event{Type: realtime.EventUserDataUpdated, UserID: userID})
	c.JSON(http.StatusOK, stats)
}

// DeleteUserData handles DELETE /api/cache/users/:userId
// Deleting data that is not cached still succeeds.
func (h *Handler) DeleteUserData(c *gin.Context) {
	userID := c.Param("userId")

	if err := h.Cache.Delete(c.Request.Context(), userID); err != nil {
		storageError(c, err)
		return
	}

	h.Hub.Publish(realtime.Event{Type: realtime.EventUserDataDeleted, UserID: userID})
	c.JSON(http.StatusOK, gin.H{
		"message": "Cached user data deleted",
		"userId":  userID,
	})
}
