package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/printshop/internal/domain/model"
)

// SelectActiveRate returns the active rate for currency with the latest ValidFrom.
func SelectActiveRate(rates []model.ExchangeRate, currency string) (*model.ExchangeRate, bool) {
	var selected *model.ExchangeRate
	for i := range rates {
		r := &rates[i]
		if !r.IsActive || !strings.EqualFold(r.CurrencyCode, currency) {
			continue
		}
		if selected == nil || r.ValidFrom.After(selected.ValidFrom) {
			selected = r
		}
	}
	if selected == nil {
		return nil, false
	}
	rate := *selected
	return &rate, true
}

// Convert returns amount expressed in the company base currency.
func Convert(amount decimal.Decimal, rate model.ExchangeRate) decimal.Decimal {
	return amount.Mul(rate.RateToCompanyCurrency)
}

// BaseAmount converts amount using the currently active rate for currency.
// It returns false when no active rate exists.
func BaseAmount(amount decimal.Decimal, currency string, rates []model.ExchangeRate) (decimal.Decimal, bool) {
	rate, ok := SelectActiveRate(rates, currency)
	if !ok {
		return decimal.Zero, false
	}
	return Convert(amount, *rate), true
}
