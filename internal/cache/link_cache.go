// Package cache holds the Redis-backed shortcode resolution cache.
// Resolution is by far the hottest path in the system; a short TTL
// cache in front of MySQL absorbs repeat hits without a freshness
// protocol beyond explicit invalidation on writes.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rdrx/rdrx/internal/model"
)

// LinkCache caches ShortLink rows keyed "link:<shortcode>". A nil
// Redis client turns every method into a no-op, so callers never
// branch on cache availability.
type LinkCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewLinkCache(rdb *redis.Client, ttl time.Duration) *LinkCache {
	return &LinkCache{rdb: rdb, ttl: ttl}
}

func key(code string) string { return "link:" + code }

// Get returns the cached row and whether it was present. Transport
// and decode errors count as a miss.
func (c *LinkCache) Get(ctx context.Context, code string) (model.ShortLink, bool) {
	if c == nil || c.rdb == nil {
		return model.ShortLink{}, false
	}
	raw, err := c.rdb.Get(ctx, key(code)).Bytes()
	if err != nil {
		return model.ShortLink{}, false
	}
	var l model.ShortLink
	if err := json.Unmarshal(raw, &l); err != nil {
		return model.ShortLink{}, false
	}
	return l, true
}

// Put stores a row for the configured TTL. Errors are dropped; the
// cache is advisory.
func (c *LinkCache) Put(ctx context.Context, l model.ShortLink) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(l)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, key(l.Shortcode), raw, c.ttl).Err()
}

// Invalidate drops a cached row after an upsert or delete.
func (c *LinkCache) Invalidate(ctx context.Context, code string) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, key(code)).Err()
}
