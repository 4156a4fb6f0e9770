package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/printshop/internal/config"
	"github.com/polkiloo/printshop/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewPrintshopFacade,
		newHTTPServer,
		newRegistryRefresher,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type workerParams struct {
	fx.In

	Facade *PrintshopFacade
	Config *config.Config
	Logger *slog.Logger
}

func newRegistryRefresher(p workerParams) *worker.RegistryRefresher {
	return worker.NewRegistryRefresher(
		p.Facade,
		p.Config.RegistryRefreshInterval,
		p.Config.WorkerPoolSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Refresher  *worker.RegistryRefresher
	Config     *config.Config
}

// registerLifecycle starts the registry refresher before the HTTP server and
// stops them in reverse order.
func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(refresherHook(p.Refresher, p.Logger))
	p.Lifecycle.Append(serverHook(p))
}

func refresherHook(refresher *worker.RegistryRefresher, logger *slog.Logger) fx.Hook {
	return fx.Hook{
		OnStart: func(ctx context.Context) error {
			incomplete, err := refresher.RefreshAll(ctx)
			switch {
			case err != nil:
				logger.Error("startup registry check failed", slog.String("error", err.Error()))
			case len(incomplete) > 0:
				ids := make([]string, 0, len(incomplete))
				for _, id := range incomplete {
					ids = append(ids, id.String())
				}
				logger.Warn("tenants with incomplete status registry",
					slog.Int("count", len(incomplete)),
					slog.Any("companies", ids),
				)
			}

			refresher.Start(context.WithoutCancel(ctx))
			return nil
		},
		OnStop: func(context.Context) error {
			refresher.Stop()
			return nil
		},
	}
}

func serverHook(p lifecycleParams) fx.Hook {
	return fx.Hook{
		OnStart: func(context.Context) error {
			p.Logger.Info("starting printshop", slog.String("addr", p.Server.Addr))
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("printshop stopped")
			return nil
		},
	}
}
