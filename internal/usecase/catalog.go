package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/printshop/internal/domain/errors"
	"github.com/polkiloo/printshop/internal/domain/model"
	"github.com/polkiloo/printshop/internal/domain/repository"
	"github.com/polkiloo/printshop/internal/registry"
)

// StatusCache is a StatusSource whose tenant entries can be dropped.
type StatusCache interface {
	StatusSource
	Invalidate(companyID uuid.UUID)
}

// StatusBadge is a registry entry with its readable text color.
type StatusBadge struct {
	Status    model.OrderStatus
	TextColor string
}

// StatusInput describes a registry entry.
type StatusInput struct {
	Name      string `validate:"required,max=100"`
	SortOrder int    `validate:"gte=0"`
	Color     string `validate:"required"`
}

// TierInput describes a pricing tier.
type TierInput struct {
	Name          string `validate:"required,max=100"`
	Label         string `validate:"max=200"`
	MarkupPercent decimal.Decimal
	IsDefault     bool
}

// RateInput describes an exchange rate to the company currency.
type RateInput struct {
	Currency  string `validate:"required,len=3"`
	Rate      decimal.Decimal
	ValidFrom *time.Time
}

// CatalogUseCase manages the per-tenant status registry, pricing tiers and rates.
type CatalogUseCase struct {
	cache      StatusCache
	statuses   repository.StatusRepository
	tiers      repository.PricingRepository
	currencies repository.CurrencyRepository
	companies  repository.CompanyRepository
	now        func() time.Time
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(
	cache StatusCache,
	statuses repository.StatusRepository,
	tiers repository.PricingRepository,
	currencies repository.CurrencyRepository,
	companies repository.CompanyRepository,
) *CatalogUseCase {
	return &CatalogUseCase{
		cache:      cache,
		statuses:   statuses,
		tiers:      tiers,
		currencies: currencies,
		companies:  companies,
		now:        time.Now,
	}
}

// Statuses returns the ordered registry with badge text colors.
func (u *CatalogUseCase) Statuses(ctx context.Context, companyID uuid.UUID) ([]StatusBadge, error) {
	snap, err := u.cache.Snapshot(ctx, companyID)
	if err != nil {
		return nil, err
	}
	statuses := snap.Statuses()
	badges := make([]StatusBadge, len(statuses))
	for i, s := range statuses {
		badges[i] = StatusBadge{Status: s, TextColor: registry.ContrastColor(s.Color)}
	}
	return badges, nil
}

// CreateStatus adds an entry to the tenant registry.
func (u *CatalogUseCase) CreateStatus(ctx context.Context, companyID uuid.UUID, in StatusInput) (*model.OrderStatus, error) {
	status, err := statusFromInput(in)
	if err != nil {
		return nil, err
	}
	status.CompanyID = companyID

	created, err := u.statuses.Create(ctx, status)
	if err != nil {
		return nil, err
	}
	u.cache.Invalidate(companyID)
	return created, nil
}

// UpdateStatus replaces an entry of the tenant registry. Orders holding the
// old name follow a rename. Ready for Production and Delivered keep their names.
func (u *CatalogUseCase) UpdateStatus(ctx context.Context, companyID, statusID uuid.UUID, in StatusInput) (*model.OrderStatus, error) {
	status, err := statusFromInput(in)
	if err != nil {
		return nil, err
	}
	status.ID = statusID
	status.CompanyID = companyID

	current, err := u.findStatus(ctx, companyID, statusID)
	if err != nil {
		return nil, err
	}
	if current.Name != status.Name && registry.Guarded(current.Name) {
		return nil, fmt.Errorf("%w: %q cannot be renamed", domainErrors.ErrGuardedStatus, current.Name)
	}

	updated, err := u.statuses.Update(ctx, status)
	if err != nil {
		return nil, err
	}
	u.cache.Invalidate(companyID)
	return updated, nil
}

func (u *CatalogUseCase) findStatus(ctx context.Context, companyID, statusID uuid.UUID) (model.OrderStatus, error) {
	statuses, err := u.statuses.List(ctx, companyID)
	if err != nil {
		return model.OrderStatus{}, fmt.Errorf("update status: %w", err)
	}
	for _, s := range statuses {
		if s.ID == statusID {
			return s, nil
		}
	}
	return model.OrderStatus{}, domainErrors.ErrNotFound
}

func statusFromInput(in StatusInput) (model.OrderStatus, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Color = strings.TrimSpace(in.Color)
	if err := validateInput(in); err != nil {
		return model.OrderStatus{}, err
	}
	if !registry.ValidColor(in.Color) {
		return model.OrderStatus{}, domainErrors.ErrInvalidColor
	}
	return model.OrderStatus{Name: in.Name, SortOrder: in.SortOrder, Color: in.Color}, nil
}

// Tiers lists the tenant pricing tiers.
func (u *CatalogUseCase) Tiers(ctx context.Context, companyID uuid.UUID) ([]model.PricingTier, error) {
	return u.tiers.ListTiers(ctx, companyID)
}

// CreateTier stores a pricing tier. A new default replaces the previous one.
func (u *CatalogUseCase) CreateTier(ctx context.Context, companyID uuid.UUID, in TierInput) (*model.PricingTier, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Label = strings.TrimSpace(in.Label)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.MarkupPercent.IsNegative() {
		return nil, domainErrors.ErrInvalidAmount
	}
	if in.Label == "" {
		in.Label = in.Name
	}
	return u.tiers.CreateTier(ctx, model.PricingTier{
		CompanyID:     companyID,
		Name:          in.Name,
		Label:         in.Label,
		MarkupPercent: in.MarkupPercent,
		IsDefault:     in.IsDefault,
	})
}

// Currencies lists every known currency.
func (u *CatalogUseCase) Currencies(ctx context.Context) ([]model.Currency, error) {
	return u.currencies.ListCurrencies(ctx)
}

// Rates lists all exchange rates of the tenant.
func (u *CatalogUseCase) Rates(ctx context.Context, companyID uuid.UUID) ([]model.ExchangeRate, error) {
	return u.currencies.ListRates(ctx, companyID, "")
}

// CreateRate stores an active exchange rate for a known currency.
func (u *CatalogUseCase) CreateRate(ctx context.Context, companyID uuid.UUID, in RateInput) (*model.ExchangeRate, error) {
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if !in.Rate.IsPositive() {
		return nil, domainErrors.ErrInvalidAmount
	}
	if _, err := u.currencies.GetCurrency(ctx, in.Currency); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUnknownCurrency
		}
		return nil, fmt.Errorf("create exchange rate: %w", err)
	}

	validFrom := u.now().UTC()
	if in.ValidFrom != nil {
		validFrom = in.ValidFrom.UTC()
	}
	return u.currencies.CreateRate(ctx, model.ExchangeRate{
		CompanyID:             companyID,
		CurrencyCode:          in.Currency,
		RateToCompanyCurrency: in.Rate,
		ValidFrom:             validFrom,
		IsActive:              true,
	})
}

// CompanyCurrency returns the base currency of the tenant.
func (u *CatalogUseCase) CompanyCurrency(ctx context.Context, companyID uuid.UUID) (*model.Currency, error) {
	company, err := u.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	code := company.BaseCurrency
	if code == "" {
		code = model.DefaultCurrency
	}
	currency, err := u.currencies.GetCurrency(ctx, code)
	if errors.Is(err, domainErrors.ErrNotFound) {
		return &model.Currency{Code: code}, nil
	}
	return currency, err
}
