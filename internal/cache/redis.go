package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cyberscripts/storefront/internal/domain/model"
)

const publishedKey = "catalog:published"

// RedisCache stores the published listing as a JSON blob with a TTL. Write
// failures are logged and swallowed: the catalog stays correct without redis,
// just slower.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisCache constructs RedisCache around an existing client.
func NewRedisCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisCache{client: client, ttl: ttl, logger: logger}
}

// GetPublished returns the cached listing and whether it was present.
func (c *RedisCache) GetPublished(ctx context.Context) ([]model.Product, bool) {
	payload, err := c.client.Get(ctx, publishedKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("catalog cache read failed", "error", err)
		}
		return nil, false
	}
	var products []model.Product
	if err := json.Unmarshal(payload, &products); err != nil {
		c.logger.Warn("catalog cache payload corrupt", "error", err)
		return nil, false
	}
	return products, true
}

// SetPublished replaces the cached listing.
func (c *RedisCache) SetPublished(ctx context.Context, products []model.Product) {
	payload, err := json.Marshal(products)
	if err != nil {
		c.logger.Warn("catalog cache encode failed", "error", err)
		return
	}
	if err := c.client.Set(ctx, publishedKey, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("catalog cache write failed", "error", err)
	}
}

// Invalidate drops the cached listing after any catalog mutation.
func (c *RedisCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, publishedKey).Err(); err != nil {
		c.logger.Warn("catalog cache invalidation failed", "error", err)
	}
}

var _ ProductCache = (*RedisCache)(nil)
