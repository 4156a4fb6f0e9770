package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/printshop/internal/config"
	"github.com/polkiloo/printshop/internal/domain/repository"
)

// Module wires PostgreSQL storage and repository adapters.
var Module = fx.Options(
	fx.Provide(provideStorage),
	fx.Provide(
		func(s *Storage) repository.CompanyRepository { return s.Companies() },
		func(s *Storage) repository.UserRepository { return s.Users() },
		func(s *Storage) repository.OrderRepository { return s.Orders() },
		func(s *Storage) repository.StatusRepository { return s.Statuses() },
		func(s *Storage) repository.PricingRepository { return s.Pricing() },
		func(s *Storage) repository.CurrencyRepository { return s.Currencies() },
		func(s *Storage) repository.AttachmentRepository { return s.Attachments() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func provideStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
