package cache

import (
	"context"
	"time"
)

// Cache is the in-process key-value API with an optional TTL per entry. It backs
// short-lived memoization such as the search key; durable per-user data lives in
// UserDataCache instead.
type Cache[K comparable, V any] interface {
	// Get returns the value and whether it was present and not expired.
	Get(key K) (V, bool)

	// Set stores the value. If ttl <= 0, the entry does not expire.
	Set(key K, value V, ttl time.Duration)

	// Delete removes a key if present.
	Delete(key K)

	// Len returns the number of non-expired items.
	Len() int

	// PurgeExpired removes expired entries.
	PurgeExpired()
}

// Store is the durable per-user record API implemented by UserDataCache.
type Store[V any] interface {
	Get(ctx context.Context, userID string) (V, bool, error)
	Set(ctx context.Context, userID string, data V) error
	Delete(ctx context.Context, userID string) error
	Keys(ctx context.Context) ([]string, error)
	GetAll(ctx context.Context) ([]V, error)
	Entries(ctx context.Context) ([]Entry[V], error)
}

// Entry pairs a stored record with its user id.
type Entry[V any] struct {
	UserID string `json:"userId"`
	Data   V      `json:"data"`
}
