package suppliers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ListingCache memoizes listing pages for a short window. Clear drops
// the whole listing namespace and must complete before a write's
// response is returned, so a subsequent list never observes data older
// than the write.
type ListingCache interface {
	Get(ctx context.Context, key string) (*Page, bool)
	Set(ctx context.Context, key string, page *Page)
	Clear(ctx context.Context) error
}

const listingVersionKey = "suppliers:listing:version"

// RedisListingCache stores pages in Redis under a namespace version.
// Clear bumps the version; superseded entries are never read again and
// fall out on their own TTL, which keeps invalidation O(1) regardless
// of how many keys are live.
type RedisListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisListingCache constructs a cache with the given entry TTL.
func NewRedisListingCache(client *redis.Client, ttl time.Duration) *RedisListingCache {
	return &RedisListingCache{client: client, ttl: ttl}
}

// Get returns the cached page for the key, if present and fresh.
// Redis failures degrade to a miss.
func (c *RedisListingCache) Get(ctx context.Context, key string) (*Page, bool) {
	payload, err := c.client.Get(ctx, c.entryKey(ctx, key)).Bytes()
	if err != nil {
		return nil, false
	}
	var page Page
	if err := json.Unmarshal(payload, &page); err != nil {
		return nil, false
	}
	return &page, true
}

// Set stores the page under the key for the configured TTL. Failures
// are ignored: the cache is an optimization, not a source of truth.
func (c *RedisListingCache) Set(ctx context.Context, key string, page *Page) {
	payload, err := json.Marshal(page)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.entryKey(ctx, key), payload, c.ttl).Err()
}

// Clear invalidates every cached listing page.
func (c *RedisListingCache) Clear(ctx context.Context) error {
	return c.client.Incr(ctx, listingVersionKey).Err()
}

func (c *RedisListingCache) entryKey(ctx context.Context, key string) string {
	version, err := c.client.Get(ctx, listingVersionKey).Int64()
	if err != nil {
		version = 0
	}
	return fmt.Sprintf("suppliers:listing:%d:%s", version, key)
}

var _ ListingCache = (*RedisListingCache)(nil)
