package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatusRequest describes a registry entry.
type OrderStatusRequest struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
	Color     string `json:"color"`
}

// OrderStatusResponse is a registry entry with its badge text color.
type OrderStatusResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
	Color     string    `json:"color"`
	TextColor string    `json:"text_color,omitempty"`
}

// PricingTierRequest describes a pricing tier.
type PricingTierRequest struct {
	Name          string          `json:"name"`
	Label         string          `json:"label"`
	MarkupPercent decimal.Decimal `json:"markup_percent"`
	IsDefault     bool            `json:"is_default"`
}

// PricingTierResponse describes a stored pricing tier.
type PricingTierResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Label         string          `json:"label"`
	MarkupPercent decimal.Decimal `json:"markup_percent"`
	IsDefault     bool            `json:"is_default"`
}

// CurrencyResponse describes a currency.
type CurrencyResponse struct {
	Code   string `json:"code"`
	Name   string `json:"name,omitempty"`
	Symbol string `json:"symbol,omitempty"`
}

// ExchangeRateRequest describes a rate to the company currency.
type ExchangeRateRequest struct {
	Currency  string          `json:"currency_code"`
	Rate      decimal.Decimal `json:"rate_to_company_currency"`
	ValidFrom *time.Time      `json:"valid_from"`
}

// ExchangeRateResponse describes a stored rate.
type ExchangeRateResponse struct {
	ID        uuid.UUID       `json:"id"`
	Currency  string          `json:"currency_code"`
	Rate      decimal.Decimal `json:"rate_to_company_currency"`
	ValidFrom time.Time       `json:"valid_from"`
	IsActive  bool            `json:"is_active"`
}
