package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetUserSearchKey handles GET /api/algolia-keys/user
func (h *Handler) GetUserSearchKey(c *gin.Context) {
	key, err := h.Keys.UserKey(c.Request.Context())
	if err != nil {
		log.Println("search key:", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch search key"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": key})
}
