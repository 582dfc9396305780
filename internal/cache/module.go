package cache

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/cyberscripts/storefront/internal/config"
)

// Module provides the product cache to the fx container.
var Module = fx.Provide(newProductCache)

func newProductCache(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) ProductCache {
	if cfg.RedisAddress == "" {
		logger.Info("catalog cache disabled, no redis address configured")
		return NoopCache{}
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddress})
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	logger.Info("catalog cache enabled", "addr", cfg.RedisAddress)
	return NewRedisCache(client, cfg.CacheTTL, logger)
}
