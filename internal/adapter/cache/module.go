package cache

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/printshop/internal/config"
)

// Module provides the read-path cache. Without a Redis URL caching is disabled.
var Module = fx.Provide(newStore)

type storeParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newStore(p storeParams) (Store, error) {
	if p.Config.RedisURL == "" {
		p.Logger.Info("read cache disabled")
		return NopCache{}, nil
	}

	redisCache, err := NewRedisCache(p.Config.RedisURL, p.Config.CacheTTL)
	if err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := redisCache.Ping(ctx); err != nil {
				p.Logger.Warn("redis unavailable, serving uncached", slog.String("error", err.Error()))
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return redisCache.Close()
		},
	})
	return redisCache, nil
}
