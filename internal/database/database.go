package database

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"kitsustats-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const (
	// Name is the logical name of the local database.
	Name = "kitsustats"
	// SchemaVersion is the schema version this build expects.
	SchemaVersion = 1
	// StoreName is the single collection held by the database.
	StoreName = "userData"
)

// ErrSchemaTooNew is returned when the database was written by a newer schema.
var ErrSchemaTooNew = errors.New("database schema is newer than supported")

// Open opens (or creates) the SQLite database at path and brings its schema up to date.
func Open(path string, level logger.LogLevel) (*gorm.DB, error) {
	// glebarez/sqlite is a pure Go driver (no CGO required)
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// A single connection serializes writers and keeps ":memory:" databases shared.
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	log.Printf("Database %s (schema v%d) ready at %s", Name, SchemaVersion, path)
	return db, nil
}

// Opener returns a function that opens the database at path on demand.
func Opener(path string, level logger.LogLevel) func() (*gorm.DB, error) {
	return func() (*gorm.DB, error) {
		return Open(path, level)
	}
}

// Migrate creates the userData collection when the recorded schema version is
// missing or older than SchemaVersion. It is safe to call repeatedly.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.SchemaMeta{}); err != nil {
		return fmt.Errorf("migrate schema_meta: %w", err)
	}

	var meta models.SchemaMeta
	res := db.Where("name = ?", Name).Limit(1).Find(&meta)
	if res.Error != nil {
		return fmt.Errorf("read schema version: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		meta = models.SchemaMeta{Name: Name, Version: 0}
	}

	if meta.Version > SchemaVersion {
		return fmt.Errorf("%w: found v%d, want v%d", ErrSchemaTooNew, meta.Version, SchemaVersion)
	}
	if meta.Version == SchemaVersion {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(&models.UserData{}); err != nil {
			return fmt.Errorf("create %s: %w", StoreName, err)
		}
		meta.Version = SchemaVersion
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&meta).Error
	})
}

// ParseLogLevel maps a config string to a gorm log level. Unknown values yield Warn.
func ParseLogLevel(s string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
