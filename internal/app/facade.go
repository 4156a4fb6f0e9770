package app

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"github.com/polkiloo/printshop/internal/domain/model"
	"github.com/polkiloo/printshop/internal/domain/repository"
	"github.com/polkiloo/printshop/internal/pricing"
	"github.com/polkiloo/printshop/internal/registry"
	"github.com/polkiloo/printshop/internal/usecase"
)

// ReadCache stores per-tenant read views keyed by read path.
type ReadCache interface {
	Get(ctx context.Context, companyID uuid.UUID, path model.ReadPath, dest any) (bool, error)
	Set(ctx context.Context, companyID uuid.UUID, path model.ReadPath, value any) error
	Invalidate(ctx context.Context, companyID uuid.UUID, paths ...model.ReadPath) error
	Purge(ctx context.Context, companyID uuid.UUID) error
}

// FacadeParams lists the collaborators of PrintshopFacade.
type FacadeParams struct {
	fx.In

	Auth        *usecase.AuthUseCase
	Orders      *usecase.OrderUseCase
	Lifecycle   *usecase.LifecycleUseCase
	Admin       *usecase.AdminUseCase
	Catalog     *usecase.CatalogUseCase
	Attachments *usecase.AttachmentUseCase
	Registry    *registry.Cache
	Companies   repository.CompanyRepository
	Cache       ReadCache
	Logger      *slog.Logger
}

// PrintshopFacade fronts the use cases for transports and workers. Reads go
// through the read cache and writes invalidate exactly the paths they affect.
// Cache failures are logged and never fail a call.
type PrintshopFacade struct {
	auth        *usecase.AuthUseCase
	orders      *usecase.OrderUseCase
	lifecycle   *usecase.LifecycleUseCase
	admin       *usecase.AdminUseCase
	catalog     *usecase.CatalogUseCase
	attachments *usecase.AttachmentUseCase
	registry    *registry.Cache
	companies   repository.CompanyRepository
	cache       ReadCache
	logger      *slog.Logger
}

// NewPrintshopFacade constructs PrintshopFacade.
func NewPrintshopFacade(p FacadeParams) *PrintshopFacade {
	return &PrintshopFacade{
		auth:        p.Auth,
		orders:      p.Orders,
		lifecycle:   p.Lifecycle,
		admin:       p.Admin,
		catalog:     p.Catalog,
		attachments: p.Attachments,
		registry:    p.Registry,
		companies:   p.Companies,
		cache:       p.Cache,
		logger:      p.Logger,
	}
}

func (f *PrintshopFacade) Login(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Login(ctx, email, password)
	return token, err
}

func (f *PrintshopFacade) ParseToken(token string) (uuid.UUID, error) {
	return f.auth.ParseToken(token)
}

func (f *PrintshopFacade) Principal(ctx context.Context, userID uuid.UUID) (model.Principal, error) {
	return f.auth.Principal(ctx, userID)
}

func (f *PrintshopFacade) CreateUser(ctx context.Context, caller model.Principal, in usecase.CreateUserInput) (*model.User, error) {
	return f.admin.CreateUser(ctx, caller, in)
}

func (f *PrintshopFacade) CreateOrder(ctx context.Context, principal model.Principal, in usecase.CreateOrderInput) (usecase.Transition, error) {
	tr, err := f.orders.Create(ctx, principal, in)
	if err != nil {
		return usecase.Transition{}, err
	}
	f.invalidate(ctx, principal.CompanyID, tr.Affected)
	return tr, nil
}

// Orders caches only the unfiltered list.
func (f *PrintshopFacade) Orders(ctx context.Context, companyID uuid.UUID, filter model.OrderFilter) ([]model.Order, error) {
	if filter != (model.OrderFilter{}) {
		return f.orders.List(ctx, companyID, filter)
	}
	return readThrough(ctx, f, companyID, model.OrdersPath, func() ([]model.Order, error) {
		return f.orders.List(ctx, companyID, filter)
	})
}

func (f *PrintshopFacade) Order(ctx context.Context, companyID, orderID uuid.UUID, variant pricing.Variant) (*usecase.OrderView, error) {
	order, err := readThrough(ctx, f, companyID, model.OrderPath(orderID), func() (*model.Order, error) {
		return f.orders.Get(ctx, companyID, orderID)
	})
	if err != nil {
		return nil, err
	}
	return f.orders.Describe(ctx, *order, variant)
}

func (f *PrintshopFacade) AdvanceStatus(ctx context.Context, companyID, orderID uuid.UUID, status string) (usecase.Transition, error) {
	tr, err := f.lifecycle.AdvanceStatus(ctx, companyID, orderID, status)
	return f.afterTransition(ctx, companyID, tr, err)
}

func (f *PrintshopFacade) ConfirmPayment(ctx context.Context, companyID, orderID uuid.UUID, in usecase.PaymentInput) (usecase.Transition, error) {
	tr, err := f.lifecycle.ConfirmPayment(ctx, companyID, orderID, in)
	return f.afterTransition(ctx, companyID, tr, err)
}

func (f *PrintshopFacade) MarkDelivered(ctx context.Context, companyID, orderID uuid.UUID, method model.PaymentMethod) (usecase.Transition, error) {
	tr, err := f.lifecycle.MarkDelivered(ctx, companyID, orderID, method)
	return f.afterTransition(ctx, companyID, tr, err)
}

func (f *PrintshopFacade) DeliveryEligibility(ctx context.Context, companyID, orderID uuid.UUID) (usecase.Eligibility, error) {
	return readThrough(ctx, f, companyID, model.OrderDeliveryPath(orderID), func() (usecase.Eligibility, error) {
		return f.lifecycle.Eligibility(ctx, companyID, orderID)
	})
}

func (f *PrintshopFacade) UploadAttachment(ctx context.Context, principal model.Principal, orderID uuid.UUID, in usecase.UploadInput) (usecase.AttachmentUpload, error) {
	up, err := f.attachments.Upload(ctx, principal, orderID, in)
	if err != nil {
		return usecase.AttachmentUpload{}, err
	}
	f.invalidate(ctx, principal.CompanyID, up.Affected)
	return up, nil
}

func (f *PrintshopFacade) Attachments(ctx context.Context, companyID, orderID uuid.UUID) ([]model.Attachment, error) {
	return readThrough(ctx, f, companyID, model.OrderAttachmentsPath(orderID), func() ([]model.Attachment, error) {
		return f.attachments.List(ctx, companyID, orderID)
	})
}

func (f *PrintshopFacade) Statuses(ctx context.Context, companyID uuid.UUID) ([]usecase.StatusBadge, error) {
	return readThrough(ctx, f, companyID, model.StatusesPath, func() ([]usecase.StatusBadge, error) {
		return f.catalog.Statuses(ctx, companyID)
	})
}

// CreateStatus purges every cached view of the tenant since badges are embedded in order views.
func (f *PrintshopFacade) CreateStatus(ctx context.Context, companyID uuid.UUID, in usecase.StatusInput) (*model.OrderStatus, error) {
	status, err := f.catalog.CreateStatus(ctx, companyID, in)
	if err != nil {
		return nil, err
	}
	f.purge(ctx, companyID)
	return status, nil
}

func (f *PrintshopFacade) UpdateStatus(ctx context.Context, companyID, statusID uuid.UUID, in usecase.StatusInput) (*model.OrderStatus, error) {
	status, err := f.catalog.UpdateStatus(ctx, companyID, statusID, in)
	if err != nil {
		return nil, err
	}
	f.purge(ctx, companyID)
	return status, nil
}

func (f *PrintshopFacade) PricingTiers(ctx context.Context, companyID uuid.UUID) ([]model.PricingTier, error) {
	return readThrough(ctx, f, companyID, model.PricingTiersPath, func() ([]model.PricingTier, error) {
		return f.catalog.Tiers(ctx, companyID)
	})
}

func (f *PrintshopFacade) CreatePricingTier(ctx context.Context, companyID uuid.UUID, in usecase.TierInput) (*model.PricingTier, error) {
	tier, err := f.catalog.CreateTier(ctx, companyID, in)
	if err != nil {
		return nil, err
	}
	f.invalidate(ctx, companyID, []model.ReadPath{model.PricingTiersPath})
	return tier, nil
}

func (f *PrintshopFacade) Currencies(ctx context.Context) ([]model.Currency, error) {
	return f.catalog.Currencies(ctx)
}

func (f *PrintshopFacade) ExchangeRates(ctx context.Context, companyID uuid.UUID) ([]model.ExchangeRate, error) {
	return readThrough(ctx, f, companyID, model.ExchangeRatesPath, func() ([]model.ExchangeRate, error) {
		return f.catalog.Rates(ctx, companyID)
	})
}

func (f *PrintshopFacade) CreateExchangeRate(ctx context.Context, companyID uuid.UUID, in usecase.RateInput) (*model.ExchangeRate, error) {
	rate, err := f.catalog.CreateRate(ctx, companyID, in)
	if err != nil {
		return nil, err
	}
	f.invalidate(ctx, companyID, []model.ReadPath{model.ExchangeRatesPath})
	return rate, nil
}

func (f *PrintshopFacade) CompanyCurrency(ctx context.Context, companyID uuid.UUID) (*model.Currency, error) {
	return f.catalog.CompanyCurrency(ctx, companyID)
}

func (f *PrintshopFacade) Companies(ctx context.Context) ([]model.Company, error) {
	return f.companies.List(ctx)
}

func (f *PrintshopFacade) ReloadRegistry(ctx context.Context, companyID uuid.UUID) (registry.Snapshot, error) {
	return f.registry.Reload(ctx, companyID)
}

func (f *PrintshopFacade) afterTransition(ctx context.Context, companyID uuid.UUID, tr usecase.Transition, err error) (usecase.Transition, error) {
	if err != nil {
		return usecase.Transition{}, err
	}
	f.invalidate(ctx, companyID, tr.Affected)
	return tr, nil
}

func (f *PrintshopFacade) invalidate(ctx context.Context, companyID uuid.UUID, paths []model.ReadPath) {
	if err := f.cache.Invalidate(ctx, companyID, paths...); err != nil {
		f.logger.Warn("read cache invalidation failed",
			slog.String("company", companyID.String()),
			slog.String("error", err.Error()),
		)
	}
}

func (f *PrintshopFacade) purge(ctx context.Context, companyID uuid.UUID) {
	if err := f.cache.Purge(ctx, companyID); err != nil {
		f.logger.Warn("read cache purge failed",
			slog.String("company", companyID.String()),
			slog.String("error", err.Error()),
		)
	}
}

func readThrough[T any](ctx context.Context, f *PrintshopFacade, companyID uuid.UUID, path model.ReadPath, load func() (T, error)) (T, error) {
	var cached T
	hit, err := f.cache.Get(ctx, companyID, path, &cached)
	switch {
	case err != nil:
		f.logger.Warn("read cache lookup failed", slog.String("path", string(path)), slog.String("error", err.Error()))
	case hit:
		return cached, nil
	}

	value, err := load()
	if err != nil {
		return value, err
	}
	if err := f.cache.Set(ctx, companyID, path, value); err != nil {
		f.logger.Warn("read cache store failed", slog.String("path", string(path)), slog.String("error", err.Error()))
	}
	return value, nil
}
