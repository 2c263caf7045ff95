package testutil

import (
	"kitsustats-api/internal/database"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewInMemoryDB creates an in-memory SQLite DB and runs migrations.
func NewInMemoryDB() (*gorm.DB, error) {
	return database.Open(":memory:", logger.Silent)
}

// InMemoryOpener returns an opener that lazily creates a fresh in-memory DB.
func InMemoryOpener() func() (*gorm.DB, error) {
	return NewInMemoryDB
}
