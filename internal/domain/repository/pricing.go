package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/printshop/internal/domain/model"
)

// PricingRepository stores markup tiers.
type PricingRepository interface {
	ListTiers(ctx context.Context, companyID uuid.UUID) ([]model.PricingTier, error)
	GetTier(ctx context.Context, companyID, tierID uuid.UUID) (*model.PricingTier, error)
	DefaultTier(ctx context.Context, companyID uuid.UUID) (*model.PricingTier, error)
	// CreateTier clears any previous default in the same transaction when tier.IsDefault is set.
	CreateTier(ctx context.Context, tier model.PricingTier) (*model.PricingTier, error)
}

// CurrencyRepository stores currencies and company exchange rates.
type CurrencyRepository interface {
	ListCurrencies(ctx context.Context) ([]model.Currency, error)
	GetCurrency(ctx context.Context, code string) (*model.Currency, error)
	ListRates(ctx context.Context, companyID uuid.UUID, currency string) ([]model.ExchangeRate, error)
	CreateRate(ctx context.Context, rate model.ExchangeRate) (*model.ExchangeRate, error)
}
