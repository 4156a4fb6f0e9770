// Package pricing formats and converts monetary amounts between a tenant's
// base currency and foreign transaction currencies.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/printshop/internal/domain/model"
)

const approxMarker = "≈ "

// FormatCurrency renders amount with two fractional digits prefixed by symbol,
// falling back to code and then to the default currency. A nil amount renders as zero.
func FormatCurrency(amount *decimal.Decimal, code, symbol string) string {
	value := decimal.Zero
	if amount != nil {
		value = *amount
	}
	prefix := strings.TrimSpace(symbol)
	if prefix == "" {
		prefix = strings.TrimSpace(code)
	}
	if prefix == "" {
		prefix = model.DefaultCurrency
	}
	return prefix + " " + value.StringFixed(2)
}

// Format renders amount in currency.
func Format(amount decimal.Decimal, currency model.Currency) string {
	return FormatCurrency(&amount, currency.Code, currency.Symbol)
}
