package main

import (
	"log"

	"kitsustats-api/internal/algolia"
	"kitsustats-api/internal/auth"
	"kitsustats-api/internal/cache"
	"kitsustats-api/internal/config"
	"kitsustats-api/internal/database"
	"kitsustats-api/internal/handlers"
	"kitsustats-api/internal/models"
	"kitsustats-api/internal/realtime"
	"kitsustats-api/internal/routes"
)

func main() {
	cfg := config.Load()

	// The database is opened on the first cache operation
	userData := cache.NewUserDataCache[models.UserStats](
		database.Opener(cfg.DBPath, database.ParseLogLevel(cfg.DBLogLevel)),
		cache.UserDataOptions{QuotaBytes: cfg.QuotaBytes},
	)

	if cfg.AdminPasswordHash == "" {
		log.Println("ADMIN_PASSWORD_HASH is not set; login is disabled")
	}

	h := &handlers.Handler{
		Cache:             userData,
		Hub:               realtime.NewHub(),
		Tokens:            auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience),
		Keys:              algolia.NewProvider(cfg.APIURL, nil, cfg.KeyTTL),
		AdminPasswordHash: cfg.AdminPasswordHash,
		MaxBodyBytes:      cfg.BodyLimit(),
	}
	ginRoutes := routes.SetupRoutes(h)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Println("API endpoints:")
	log.Println("  POST   /api/login")
	log.Println("  GET    /api/algolia-keys/user")
	log.Println("  GET    /api/cache/users")
	log.Println("  GET    /api/cache/entries")
	log.Println("  GET    /api/cache/users/:userId")
	log.Println("  PUT    /api/cache/users/:userId")
	log.Println("  DELETE /api/cache/users/:userId")
	log.Println("  GET    /api/ws")
	log.Println("  GET    /health")

	// Run only returns on failure, and log.Fatal skips deferred calls
	err := ginRoutes.Run(cfg.Port)
	if cerr := userData.Close(); cerr != nil {
		log.Println("Failed to close database: ", cerr)
	}
	log.Fatal("Failed to start server: ", err)
}
