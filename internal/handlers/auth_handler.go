package handlers

import (
	"errors"
	"net/http"

	"kitsustats-api/internal/auth"

	"github.com/gin-gonic/gin"
)

// adminID is the subject of every token; there is a single admin account.
const adminID = "admin"

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

// Login handles POST /api/login
// The password is checked against the configured admin bcrypt hash.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request. Username and password are required.",
		})
		return
	}

	if err := auth.CheckPassword(h.AdminPasswordHash, req.Password); err != nil {
		if errors.Is(err, auth.ErrLoginDisabled) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Login is disabled"})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.Tokens.GenerateToken(adminID, req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate token",
		})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:    token,
		UserID:   adminID,
		Username: req.Username,
		Message:  "Login successful",
	})
}
