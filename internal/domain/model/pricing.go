package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when neither a currency code nor a symbol is known.
const DefaultCurrency = "AED"

// PricingTier is a named markup profile.
type PricingTier struct {
	ID            uuid.UUID
	CompanyID     uuid.UUID
	Name          string
	Label         string
	MarkupPercent decimal.Decimal
	IsDefault     bool
}

// Currency is global reference data.
type Currency struct {
	Code   string
	Name   string
	Symbol string
}

// ExchangeRate converts a foreign currency into the company base currency.
type ExchangeRate struct {
	ID                    uuid.UUID
	CompanyID             uuid.UUID
	CurrencyCode          string
	RateToCompanyCurrency decimal.Decimal
	ValidFrom             time.Time
	IsActive              bool
}
