// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// fragment.go provides a Valkey-backed cache of rendered HTML fragments.
// The question list for a given combination of selectors and expanded
// question is identical for every visitor, so it is rendered once and
// served from Valkey until the TTL runs out or the server restarts.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// fragmentKeyPrefix is the Valkey key prefix for cached fragments.
	fragmentKeyPrefix = "fragment:"

	// DefaultFragmentTTL is how long a rendered fragment stays cached.
	DefaultFragmentTTL = 10 * time.Minute
)

// FragmentCache manages rendered-fragment caching in Valkey. A nil
// *FragmentCache is valid and never hits.
type FragmentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFragmentCache creates a fragment cache backed by the given Valkey client.
func NewFragmentCache(client *redis.Client, ttl time.Duration) *FragmentCache {
	if ttl == 0 {
		ttl = DefaultFragmentTTL
	}
	return &FragmentCache{client: client, ttl: ttl}
}

// Get retrieves cached HTML for a fragment key.
func (fc *FragmentCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if fc == nil {
		return nil, false
	}
	val, err := fc.client.Get(ctx, fragmentKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("fragment cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("fragment cache hit", "key", key)
	return val, true
}

// Set stores rendered HTML for a fragment key with the configured TTL.
// Failures are logged; the caller already has the HTML it rendered.
func (fc *FragmentCache) Set(ctx context.Context, key string, html []byte) {
	if fc == nil {
		return
	}
	if err := fc.client.Set(ctx, fragmentKeyPrefix+key, html, fc.ttl).Err(); err != nil {
		slog.Warn("fragment cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached fragment by scanning for the prefix.
// The server calls it at startup: a new build may ship a different
// question catalog or different templates. Returns the number of keys
// deleted.
func (fc *FragmentCache) InvalidateAll(ctx context.Context) int {
	if fc == nil {
		return 0
	}
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := fc.client.Scan(ctx, cursor, fragmentKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("fragment cache scan error", "error", err)
			return deleted
		}
		if len(keys) > 0 {
			if err := fc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("fragment cache bulk delete error", "error", err)
			} else {
				deleted += len(keys)
			}
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("fragment cache cleared", "deleted", deleted)
	}
	return deleted
}

// ResultsKey returns the cache key of the question list for a view key.
func ResultsKey(viewKey string) string {
	return "results:" + viewKey
}
