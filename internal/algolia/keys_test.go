package algolia

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProvider_FetchesOnceAndMemoizes(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/algolia-keys/user" {
			http.NotFound(w, r)
			return
		}
		hits.Add(1)
		_, _ = w.Write([]byte(`{"users":{"key":"search-key","index":"production_users"}}`))
	}))
	t.Cleanup(srv.Close)

	p := NewProvider(srv.URL+"/", srv.Client(), 0)

	var wg sync.WaitGroup
	results := make(chan UserKey, 10)
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			k, err := p.UserKey(context.Background())
			if err != nil {
				errs <- err
				return
			}
			results <- k
		}()
	}
	wg.Wait()
	close(results)
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	for k := range results {
		require.Equal(t, UserKey{Key: "search-key", Index: "production_users"}, k)
	}

	_, err := p.UserKey(context.Background())
	require.NoError(t, err)
	require.Equal(t, int32(1), hits.Load())
}

func TestProvider_FailureIsNotMemoized(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"users":{"key":"k","index":"i"}}`))
	}))
	t.Cleanup(srv.Close)

	p := NewProvider(srv.URL, srv.Client(), 0)

	_, err := p.UserKey(context.Background())
	require.Error(t, err)

	k, err := p.UserKey(context.Background())
	require.NoError(t, err)
	require.Equal(t, "k", k.Key)
}

func TestProvider_EmptyKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	_, err := NewProvider(srv.URL, srv.Client(), 0).UserKey(context.Background())
	require.ErrorIs(t, err, errEmptyKey)
}

func TestProvider_CanceledCallerDoesNotFailOthers(t *testing.T) {
	var hits atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			close(started)
		}
		<-release
		_, _ = w.Write([]byte(`{"users":{"key":"k","index":"i"}}`))
	}))
	t.Cleanup(srv.Close)

	p := NewProvider(srv.URL, srv.Client(), 0)

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := p.UserKey(firstCtx)
		firstErr <- err
	}()
	<-started

	type result struct {
		key UserKey
		err error
	}
	second := make(chan result, 1)
	go func() {
		k, err := p.UserKey(context.Background())
		second <- result{k, err}
	}()

	cancel()
	require.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	res := <-second
	require.NoError(t, res.err)
	require.Equal(t, "k", res.key.Key)
	require.Equal(t, int32(1), hits.Load())
}
