package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"kitsustats-api/internal/cache"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func loginRequest(t *testing.T, password string) *http.Request {
	t.Helper()
	body, err := json.Marshal(map[string]string{"username": "alice", "password": password})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	h := newTestHandler(t, cache.UserDataOptions{})
	h.AdminPasswordHash = string(hash)
	r := gin.New()
	r.POST("/api/login", h.Login)

	w := serve(r, loginRequest(t, "hunter2"))
	require.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	claims, err := h.Tokens.ValidateToken(resp.Token)
	require.NoError(t, err)
	require.Equal(t, adminID, claims.UserID)

	w = serve(r, loginRequest(t, "wrong"))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_Disabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestHandler(t, cache.UserDataOptions{})
	r := gin.New()
	r.POST("/api/login", h.Login)

	w := serve(r, loginRequest(t, "anything"))
	require.Equal(t, http.StatusForbidden, w.Code)
}
