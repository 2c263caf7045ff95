package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testManager() *TokenManager {
	return NewTokenManager("test-secret", "kitsustats-api", "kitsustats-clients")
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := testManager()
	token, err := m.GenerateToken("admin", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.UserID)
	require.Equal(t, "alice", claims.Username)
}

func TestValidateToken_Invalid(t *testing.T) {
	_, err := testManager().ValidateToken("invalid.token")
	require.Error(t, err)
}

func TestValidateToken_WrongAudience(t *testing.T) {
	token, err := NewTokenManager("test-secret", "kitsustats-api", "someone-else").GenerateToken("admin", "alice")
	require.NoError(t, err)

	_, err = testManager().ValidateToken(token)
	require.Error(t, err)
}

func TestCheckPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	require.NoError(t, CheckPassword(string(hash), "hunter2"))
	require.Error(t, CheckPassword(string(hash), "wrong"))
	require.ErrorIs(t, CheckPassword("", "hunter2"), ErrLoginDisabled)
}
