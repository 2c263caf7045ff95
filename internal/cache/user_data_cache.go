package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"kitsustats-api/internal/models"

	gosqlite "github.com/glebarez/go-sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Opener opens the database backing a UserDataCache and brings its schema up to date.
type Opener func() (*gorm.DB, error)

// UserDataOptions controls construction of a UserDataCache.
type UserDataOptions struct {
	// QuotaBytes bounds the summed size of encoded records. Zero disables the quota.
	QuotaBytes int64
}

// UserDataCache persists one JSON-encoded record of type V per user id in the
// userData collection. The database is opened on first use and shared by every
// caller; a failed open is retried by the next operation.
//
// There is no in-memory layer: every read goes to the database.
type UserDataCache[V any] struct {
	open  Opener
	quota int64

	mu     sync.Mutex
	db     *gorm.DB
	closed bool
}

// NewUserDataCache constructs a cache that opens its database with open.
func NewUserDataCache[V any](open Opener, opts UserDataOptions) *UserDataCache[V] {
	return &UserDataCache[V]{open: open, quota: opts.QuotaBytes}
}

// conn returns the shared handle, opening it if needed. Concurrent first callers
// wait on the same open.
func (c *UserDataCache[V]) conn(ctx context.Context) (*gorm.DB, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, fmt.Errorf("%w: cache is closed", ErrStorageUnavailable)
	}
	if c.db == nil {
		db, err := c.open()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		c.db = db
	}
	return c.db.WithContext(ctx), nil
}

// Get returns the record stored for userID. The boolean is false when no record exists.
func (c *UserDataCache[V]) Get(ctx context.Context, userID string) (V, bool, error) {
	var zero V
	if err := validateUserID(userID); err != nil {
		return zero, false, err
	}
	db, err := c.conn(ctx)
	if err != nil {
		return zero, false, err
	}

	var row models.UserData
	res := db.Where("user_id = ?", userID).Limit(1).Find(&row)
	if res.Error != nil {
		return zero, false, classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return zero, false, nil
	}

	v, err := decode[V](row)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

// Set stores data for userID, fully replacing any previous record.
func (c *UserDataCache[V]) Set(ctx context.Context, userID string, data V) error {
	if err := validateUserID(userID); err != nil {
		return err
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode record for %s: %w", userID, err)
	}
	db, err := c.conn(ctx)
	if err != nil {
		return err
	}

	ts := time.Now()
	row := models.UserData{
		UserID:    userID,
		Data:      encoded,
		Size:      int64(len(encoded)),
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if c.quota > 0 {
			var used int64
			if err := tx.Model(&models.UserData{}).
				Where("user_id <> ?", userID).
				Select("COALESCE(SUM(size), 0)").
				Scan(&used).Error; err != nil {
				return err
			}
			if used+row.Size > c.quota {
				return fmt.Errorf("%w: %d of %d bytes in use, record is %d bytes",
					ErrStorageQuotaExceeded, used, c.quota, row.Size)
			}
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "size", "updated_at"}),
		}).Create(&row).Error
	})
	if errors.Is(err, ErrStorageQuotaExceeded) {
		return err
	}
	return classify(err)
}

// Delete removes the record for userID. Deleting a missing record is not an error.
func (c *UserDataCache[V]) Delete(ctx context.Context, userID string) error {
	if err := validateUserID(userID); err != nil {
		return err
	}
	db, err := c.conn(ctx)
	if err != nil {
		return err
	}
	return classify(db.Where("user_id = ?", userID).Delete(&models.UserData{}).Error)
}

// Keys returns every stored user id, ordered by id.
func (c *UserDataCache[V]) Keys(ctx context.Context) ([]string, error) {
	db, err := c.conn(ctx)
	if err != nil {
		return nil, err
	}
	var keys []string
	if err := db.Model(&models.UserData{}).Order("user_id").Pluck("user_id", &keys).Error; err != nil {
		return nil, classify(err)
	}
	if keys == nil {
		keys = []string{}
	}
	return keys, nil
}

// GetAll returns every stored record in the same order as Keys.
func (c *UserDataCache[V]) GetAll(ctx context.Context) ([]V, error) {
	entries, err := c.Entries(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]V, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Data)
	}
	return out, nil
}

// Entries returns every stored record with its user id, read in a single query.
func (c *UserDataCache[V]) Entries(ctx context.Context) ([]Entry[V], error) {
	db, err := c.conn(ctx)
	if err != nil {
		return nil, err
	}
	var rows []models.UserData
	if err := db.Order("user_id").Find(&rows).Error; err != nil {
		return nil, classify(err)
	}

	out := make([]Entry[V], 0, len(rows))
	for _, row := range rows {
		v, err := decode[V](row)
		if err != nil {
			return nil, err
		}
		out = append(out, Entry[V]{UserID: row.UserID, Data: v})
	}
	return out, nil
}

// Close releases the database connection. Later operations fail with ErrStorageUnavailable.
func (c *UserDataCache[V]) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.db == nil {
		return nil
	}
	sqlDB, err := c.db.DB()
	c.db = nil
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func validateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidUserID
	}
	return nil
}

func decode[V any](row models.UserData) (V, error) {
	var v V
	if err := json.Unmarshal(row.Data, &v); err != nil {
		return v, fmt.Errorf("%w: %s: %v", ErrCorruptRecord, row.UserID, err)
	}
	return v, nil
}

// sqliteFull is SQLITE_FULL; extended result codes keep it in the low byte.
const sqliteFull = 13

// sqliteError is the driver's typed error carrying a SQLite result code.
type sqliteError interface {
	error
	Code() int
}

var _ sqliteError = (*gosqlite.Error)(nil)

// classify maps driver errors onto the cache's error taxonomy.
func classify(err error) error {
	var sqlErr sqliteError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.As(err, &sqlErr) && sqlErr.Code()&0xff == sqliteFull:
		return fmt.Errorf("%w: %v", ErrStorageQuotaExceeded, err)
	default:
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
}

var _ Store[any] = (*UserDataCache[any])(nil)
