package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/printshop/internal/adapter/cache"
	"github.com/polkiloo/printshop/internal/adapter/objectstore"
	"github.com/polkiloo/printshop/internal/app"
	"github.com/polkiloo/printshop/internal/config"
	"github.com/polkiloo/printshop/internal/logger"
	"github.com/polkiloo/printshop/internal/metrics"
	"github.com/polkiloo/printshop/internal/pkg/auth"
	"github.com/polkiloo/printshop/internal/registry"
	"github.com/polkiloo/printshop/internal/server/http/handlers"
	"github.com/polkiloo/printshop/internal/server/http/router"
	"github.com/polkiloo/printshop/internal/storage/postgres"
	"github.com/polkiloo/printshop/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		auth.Module,
		postgres.Module,
		registry.Module,
		cache.Module,
		objectstore.Module,
		usecase.Module,
		fx.Provide(
			func(c *registry.Cache) usecase.StatusSource { return c },
			func(c *registry.Cache) usecase.StatusCache { return c },
			func(m *metrics.Metrics) usecase.Recorder { return m },
			func(s objectstore.Store) usecase.ObjectStore { return s },
			func(s cache.Store) app.ReadCache { return s },
			func(f *app.PrintshopFacade) handlers.PrintshopFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
