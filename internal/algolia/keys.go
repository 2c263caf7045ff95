// Package algolia fetches the search-only key the front end uses to query user profiles.
package algolia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"kitsustats-api/internal/cache"

	"golang.org/x/sync/singleflight"
)

// UserKey is the search key and index for user lookups.
type UserKey struct {
	Key   string `json:"key"`
	Index string `json:"index"`
}

type keysResponse struct {
	Users *UserKey `json:"users"`
}

const (
	userKeyPath  = "/algolia-keys/user"
	fetchTimeout = 10 * time.Second
)

var errEmptyKey = errors.New("algolia: empty user key in response")

// Provider fetches the user key from the backend API and memoizes it.
type Provider struct {
	baseURL string
	client  *http.Client
	ttl     time.Duration

	memo  cache.Cache[string, UserKey]
	group singleflight.Group
}

// NewProvider builds a Provider for the API at baseURL. A ttl of zero keeps the
// key for the life of the process.
func NewProvider(baseURL string, client *http.Client, ttl time.Duration) *Provider {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Provider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		ttl:     ttl,
		memo:    cache.NewSimpleCache[string, UserKey](cache.Options{ConcurrencySafe: true}),
	}
}

// UserKey returns the memoized key, fetching it on the first call. Concurrent
// callers share one request; failures are not memoized. The shared request is
// detached from any single caller, so a caller giving up only stops its own wait.
func (p *Provider) UserKey(ctx context.Context) (UserKey, error) {
	if k, ok := p.memo.Get(userKeyPath); ok {
		return k, nil
	}

	ch := p.group.DoChan(userKeyPath, func() (any, error) {
		if k, ok := p.memo.Get(userKeyPath); ok {
			return k, nil
		}
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()

		k, err := p.fetch(fetchCtx)
		if err != nil {
			return UserKey{}, err
		}
		p.memo.Set(userKeyPath, k, p.ttl)
		return k, nil
	})

	select {
	case <-ctx.Done():
		return UserKey{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return UserKey{}, res.Err
		}
		return res.Val.(UserKey), nil
	}
}

func (p *Provider) fetch(ctx context.Context) (UserKey, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+userKeyPath, nil)
	if err != nil {
		return UserKey{}, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return UserKey{}, fmt.Errorf("algolia: fetch user key: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return UserKey{}, fmt.Errorf("algolia: fetch user key: unexpected status %d", resp.StatusCode)
	}

	var body keysResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return UserKey{}, fmt.Errorf("algolia: decode user key: %w", err)
	}
	if body.Users == nil || body.Users.Key == "" {
		return UserKey{}, errEmptyKey
	}
	return *body.Users, nil
}
