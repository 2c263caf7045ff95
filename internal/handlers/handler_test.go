package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"kitsustats-api/internal/algolia"
	"kitsustats-api/internal/auth"
	"kitsustats-api/internal/cache"
	"kitsustats-api/internal/models"
	"kitsustats-api/internal/realtime"
	"kitsustats-api/internal/testutil"

	"github.com/stretchr/testify/require"
)

type stubKeys struct {
	key algolia.UserKey
	err error
}

func (s stubKeys) UserKey(context.Context) (algolia.UserKey, error) { return s.key, s.err }

// brokenStore fails every operation the way an unopenable database does.
type brokenStore struct{ err error }

func (b brokenStore) Get(context.Context, string) (models.UserStats, bool, error) {
	return models.UserStats{}, false, b.err
}
func (b brokenStore) Set(context.Context, string, models.UserStats) error { return b.err }
func (b brokenStore) Delete(context.Context, string) error              { return b.err }
func (b brokenStore) Keys(context.Context) ([]string, error)            { return nil, b.err }
func (b brokenStore) GetAll(context.Context) ([]models.UserStats, error) { return nil, b.err }
func (b brokenStore) Entries(context.Context) ([]cache.Entry[models.UserStats], error) {
	return nil, b.err
}

func newTestHandler(t *testing.T, opts cache.UserDataOptions) *Handler {
	t.Helper()
	store := cache.NewUserDataCache[models.UserStats](testutil.InMemoryOpener(), opts)
	t.Cleanup(func() { _ = store.Close() })
	return &Handler{
		Cache:  store,
		Hub:    realtime.NewHub(),
		Tokens: auth.NewTokenManager("test-secret", "kitsustats-api", "kitsustats-clients"),
		Keys:   stubKeys{key: algolia.UserKey{Key: "k", Index: "users"}},
	}
}

func bearer(t *testing.T, h *Handler, req *http.Request) *http.Request {
	t.Helper()
	token, err := h.Tokens.GenerateToken(adminID, "alice")
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
