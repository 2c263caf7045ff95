package cache

import "errors"

var (
	// ErrStorageUnavailable means the backing database could not be opened or accessed.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrStorageQuotaExceeded means a write would exceed the storage quota.
	ErrStorageQuotaExceeded = errors.New("storage quota exceeded")
	// ErrInvalidUserID is returned for empty user ids.
	ErrInvalidUserID = errors.New("user id must not be empty")
	// ErrCorruptRecord means a stored record could not be decoded.
	ErrCorruptRecord = errors.New("stored record is corrupt")
)
