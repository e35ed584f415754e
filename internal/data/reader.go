// Package data implements the site's data-fetching layer: cached, de-duplicated
// reads and a guarded registration mutation, both backed by the backend client.
package data

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"kenics-pageant-site/internal/backend"
	"kenics-pageant-site/internal/cache"
	"kenics-pageant-site/internal/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// Reader serves read queries against the backend. Responses are cached by
// request path and concurrent requests for the same path share one in-flight
// backend call.
type Reader struct {
	client *backend.Client
	cache  cache.Cache
	ttl    time.Duration
	group  singleflight.Group
}

// NewReader creates a reader over the given client and cache
func NewReader(client *backend.Client, c cache.Cache, ttl time.Duration) *Reader {
	return &Reader{
		client: client,
		cache:  c,
		ttl:    ttl,
	}
}

// Contestants returns the full contestant list
func (r *Reader) Contestants(ctx context.Context) ([]models.Contestant, error) {
	raw, err := r.fetch(ctx, "/registration")
	if err != nil {
		return nil, err
	}

	var contestants []models.Contestant
	if err := json.Unmarshal(raw, &contestants); err != nil {
		return nil, fmt.Errorf("failed to decode contestant list: %w", err)
	}
	return contestants, nil
}

// Contestant returns one contestant by id
func (r *Reader) Contestant(ctx context.Context, id string) (*models.Contestant, error) {
	raw, err := r.fetch(ctx, "/registration/"+id)
	if err != nil {
		return nil, err
	}

	var contestant models.Contestant
	if err := json.Unmarshal(raw, &contestant); err != nil {
		return nil, fmt.Errorf("failed to decode contestant: %w", err)
	}
	return &contestant, nil
}

// fetch returns the raw JSON for path, consulting the cache first and
// collapsing concurrent fetches of the same path into one backend call.
func (r *Reader) fetch(ctx context.Context, path string) ([]byte, error) {
	if value, ok := r.cache.Get(ctx, path); ok {
		return value, nil
	}

	result, err, shared := r.group.Do(path, func() (interface{}, error) {
		var raw json.RawMessage
		if err := r.client.Get(ctx, path, &raw); err != nil {
			return nil, err
		}
		r.cache.Set(ctx, path, raw, r.ttl)
		return []byte(raw), nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		log.Debug().Str("path", path).Msg("Read request de-duplicated")
	}
	return result.([]byte), nil
}

// Invalidate drops the cached responses touched by a new registration
func (r *Reader) Invalidate(ctx context.Context) {
	r.cache.Delete(ctx, "/registration")
}
