package routes

import (
	"kitsustats-api/internal/handlers"
	"kitsustats-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(h *handlers.Handler) *gin.Engine {
	ginRouter := gin.Default()

	// CORS middleware (for the statistics front end)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "KitsuStats cache API is running",
		})
	})

	// Public routes
	api := ginRouter.Group("/api")
	{
		api.POST("/login", h.Login)
		api.GET("/algolia-keys/user", h.GetUserSearchKey)
	}

	// Protected routes
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.RequireToken(h.Tokens))
	{
		protectedRoutes.GET("/cache/users", h.ListUserKeys)
		protectedRoutes.GET("/cache/entries", h.ListEntries)
		protectedRoutes.GET("/cache/users/:userId", h.GetUserData)
		protectedRoutes.PUT("/cache/users/:userId", h.PutUserData)
		protectedRoutes.DELETE("/cache/users/:userId", h.DeleteUserData)
		protectedRoutes.GET("/ws", h.WatchUserData)
	}

	return ginRouter
}
