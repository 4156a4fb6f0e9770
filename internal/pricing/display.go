package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/printshop/internal/domain/model"
)

// Variant selects the layout of a rendered price.
type Variant string

const (
	VariantInline  Variant = "inline"
	VariantStacked Variant = "stacked"
	VariantCompact Variant = "compact"
)

// ParseVariant maps unknown values to the inline layout.
func ParseVariant(v string) Variant {
	switch Variant(strings.ToLower(strings.TrimSpace(v))) {
	case VariantStacked:
		return VariantStacked
	case VariantCompact:
		return VariantCompact
	default:
		return VariantInline
	}
}

// DisplayInput carries everything needed to render an order price.
type DisplayInput struct {
	Amount      decimal.Decimal
	Base        model.Currency
	Foreign     *model.Currency
	BaseAmount  *decimal.Decimal
	Variant     Variant
	Approximate bool
}

// RenderedPrice holds the chosen values and their laid out text.
type RenderedPrice struct {
	Primary   string  `json:"primary"`
	Secondary string  `json:"secondary,omitempty"`
	Variant   Variant `json:"variant"`
	Text      string  `json:"text"`
}

// Dual reports whether a converted base amount is shown.
func (p RenderedPrice) Dual() bool {
	return p.Secondary != ""
}

// ResolveDisplay chooses the amounts to show. Only a foreign currency different
// from the base with a known base amount produces a secondary value.
func ResolveDisplay(in DisplayInput) RenderedPrice {
	variant := in.Variant
	if variant == "" {
		variant = VariantInline
	}

	if in.Foreign == nil || in.Foreign.Code == "" || strings.EqualFold(in.Foreign.Code, in.Base.Code) || in.BaseAmount == nil {
		primary := Format(in.Amount, in.Base)
		return RenderedPrice{Primary: primary, Variant: variant, Text: primary}
	}

	primary := Format(in.Amount, *in.Foreign)
	secondary := Format(*in.BaseAmount, in.Base)
	if in.Approximate {
		secondary = approxMarker + secondary
	}

	return RenderedPrice{
		Primary:   primary,
		Secondary: secondary,
		Variant:   variant,
		Text:      layout(variant, primary, secondary),
	}
}

func layout(variant Variant, primary, secondary string) string {
	switch variant {
	case VariantStacked:
		return primary + "\n" + secondary
	case VariantCompact:
		return primary + " / " + secondary
	default:
		return primary + " (" + secondary + ")"
	}
}
