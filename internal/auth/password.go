package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrLoginDisabled is returned when no admin password hash is configured.
var ErrLoginDisabled = errors.New("login is disabled")

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares password against the configured bcrypt hash.
func CheckPassword(hash, password string) error {
	if hash == "" {
		return ErrLoginDisabled
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
