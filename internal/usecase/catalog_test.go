package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/printshop/internal/domain/errors"
	"github.com/polkiloo/printshop/internal/domain/model"
	"github.com/polkiloo/printshop/internal/registry"
	testhelpers "github.com/polkiloo/printshop/internal/test"
)

type catalogFixture struct {
	company    model.Company
	listCalls  int
	statuses   []model.OrderStatus
	updates    []model.OrderStatus
	tiers      *testhelpers.PricingRepositoryStub
	currencies *testhelpers.CurrencyRepositoryStub
	uc         *CatalogUseCase
}

func newCatalogFixture() *catalogFixture {
	f := &catalogFixture{
		company: model.Company{ID: uuid.New(), BaseCurrency: "AED"},
		statuses: []model.OrderStatus{
			{ID: uuid.New(), Name: "Printing", SortOrder: 20, Color: "#000000"},
			{ID: uuid.New(), Name: "New", SortOrder: 10, Color: "#FFFFFF"},
		},
		tiers: &testhelpers.PricingRepositoryStub{},
		currencies: &testhelpers.CurrencyRepositoryStub{
			Currencies: []model.Currency{{Code: "AED", Symbol: "AED"}, {Code: "USD", Symbol: "$"}},
		},
	}
	repo := testhelpers.StatusRepositoryStub{
		ListFn: func(context.Context, uuid.UUID) ([]model.OrderStatus, error) {
			f.listCalls++
			return f.statuses, nil
		},
		UpdateFn: func(_ context.Context, status model.OrderStatus) (*model.OrderStatus, error) {
			f.updates = append(f.updates, status)
			return &status, nil
		},
	}
	f.uc = NewCatalogUseCase(registry.NewCache(repo), repo, f.tiers, f.currencies,
		testhelpers.CompanyRepositoryStub{Companies: []model.Company{f.company}})
	return f
}

func TestCatalogStatuses(t *testing.T) {
	f := newCatalogFixture()

	badges, err := f.uc.Statuses(context.Background(), f.company.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(badges) != 2 || badges[0].Status.Name != "New" || badges[1].Status.Name != "Printing" {
		t.Fatalf("expected sort_order ordering, got %+v", badges)
	}
	if badges[0].TextColor != "#000000" || badges[1].TextColor != "#ffffff" {
		t.Fatalf("unexpected text colors %s %s", badges[0].TextColor, badges[1].TextColor)
	}
}

func TestCatalogStatusWritesInvalidateSnapshot(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	if _, err := f.uc.Statuses(ctx, f.company.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	created, err := f.uc.CreateStatus(ctx, f.company.ID, StatusInput{Name: " Delivered ", SortOrder: 90, Color: "#00ff00"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Name != "Delivered" || created.CompanyID != f.company.ID {
		t.Fatalf("unexpected status %+v", created)
	}
	if _, err := f.uc.Statuses(ctx, f.company.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.listCalls != 2 {
		t.Fatalf("expected reload after create, got %d loads", f.listCalls)
	}

	id := f.statuses[0].ID
	updated, err := f.uc.UpdateStatus(ctx, f.company.ID, id, StatusInput{Name: "Printing", SortOrder: 30, Color: "#123456"})
	if err != nil || updated.ID != id {
		t.Fatalf("unexpected update %+v err=%v", updated, err)
	}
	if _, err := f.uc.Statuses(ctx, f.company.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// one load to find the entry, one reload after invalidation
	if f.listCalls != 4 {
		t.Fatalf("expected reload after update, got %d loads", f.listCalls)
	}
}

func TestCatalogStatusValidation(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	if _, err := f.uc.CreateStatus(ctx, f.company.ID, StatusInput{Name: "X", Color: "red"}); !errors.Is(err, domainErrors.ErrInvalidColor) {
		t.Fatalf("expected invalid color, got %v", err)
	}
	if _, err := f.uc.CreateStatus(ctx, f.company.ID, StatusInput{Color: "#ffffff"}); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := f.uc.UpdateStatus(ctx, f.company.ID, uuid.New(), StatusInput{Name: "X", SortOrder: -1, Color: "#ffffff"}); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected invalid sort order, got %v", err)
	}
}

func TestCatalogUpdateStatusGuardsRequiredNames(t *testing.T) {
	ctx := context.Background()
	for _, name := range registry.Required {
		t.Run(name, func(t *testing.T) {
			f := newCatalogFixture()
			required := model.OrderStatus{ID: uuid.New(), Name: name, SortOrder: 50, Color: "#00aa00"}
			f.statuses = append(f.statuses, required)

			_, err := f.uc.UpdateStatus(ctx, f.company.ID, required.ID, StatusInput{Name: "Renamed", SortOrder: 50, Color: "#00aa00"})
			if !errors.Is(err, domainErrors.ErrGuardedStatus) {
				t.Fatalf("expected guarded status, got %v", err)
			}
			if len(f.updates) != 0 {
				t.Fatalf("expected no write, got %+v", f.updates)
			}

			updated, err := f.uc.UpdateStatus(ctx, f.company.ID, required.ID, StatusInput{Name: name, SortOrder: 60, Color: "#112233"})
			if err != nil || updated.Name != name || updated.SortOrder != 60 {
				t.Fatalf("expected recolor to succeed, got %+v err=%v", updated, err)
			}
		})
	}
}

func TestCatalogUpdateStatusRename(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()
	printing := f.statuses[0]

	renamed, err := f.uc.UpdateStatus(ctx, f.company.ID, printing.ID, StatusInput{Name: "In Press", SortOrder: 20, Color: "#000000"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if renamed.Name != "In Press" || len(f.updates) != 1 || f.updates[0].ID != printing.ID || f.updates[0].CompanyID != f.company.ID {
		t.Fatalf("unexpected rename %+v updates=%+v", renamed, f.updates)
	}
}

func TestCatalogUpdateStatusUnknownEntry(t *testing.T) {
	f := newCatalogFixture()

	_, err := f.uc.UpdateStatus(context.Background(), f.company.ID, uuid.New(), StatusInput{Name: "X", Color: "#ffffff"})
	if !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(f.updates) != 0 {
		t.Fatal("expected no write")
	}
}

func TestCatalogTiers(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	if _, err := f.uc.CreateTier(ctx, f.company.ID, TierInput{Name: "rush", MarkupPercent: decimal.NewFromInt(-1)}); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}

	first, err := f.uc.CreateTier(ctx, f.company.ID, TierInput{Name: "standard", MarkupPercent: decimal.Zero, IsDefault: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Label != "standard" {
		t.Fatalf("expected label to default to name, got %q", first.Label)
	}
	if _, err := f.uc.CreateTier(ctx, f.company.ID, TierInput{Name: "rush", Label: "Rush job", MarkupPercent: decimal.NewFromInt(25), IsDefault: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tiers, err := f.uc.Tiers(ctx, f.company.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defaults := 0
	for _, tier := range tiers {
		if tier.IsDefault {
			defaults++
			if tier.Name != "rush" {
				t.Fatalf("expected newest default, got %s", tier.Name)
			}
		}
	}
	if defaults != 1 {
		t.Fatalf("expected exactly one default tier, got %d", defaults)
	}
}

func TestCatalogRates(t *testing.T) {
	f := newCatalogFixture()
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	f.uc.now = func() time.Time { return fixed }
	ctx := context.Background()

	cases := []struct {
		name  string
		input RateInput
		want  error
	}{
		{"zero rate", RateInput{Currency: "USD"}, domainErrors.ErrInvalidAmount},
		{"unknown currency", RateInput{Currency: "XYZ", Rate: decimal.NewFromInt(2)}, domainErrors.ErrUnknownCurrency},
		{"malformed code", RateInput{Currency: "DOLLAR", Rate: decimal.NewFromInt(2)}, domainErrors.ErrInvalidInput},
	}
	for _, tc := range cases {
		if _, err := f.uc.CreateRate(ctx, f.company.ID, tc.input); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	rate, err := f.uc.CreateRate(ctx, f.company.ID, RateInput{Currency: "usd", Rate: decimal.RequireFromString("3.6725")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rate.CurrencyCode != "USD" || !rate.IsActive || !rate.ValidFrom.Equal(fixed) {
		t.Fatalf("unexpected rate %+v", rate)
	}

	rates, err := f.uc.Rates(ctx, f.company.ID)
	if err != nil || len(rates) != 1 {
		t.Fatalf("unexpected rates %+v err=%v", rates, err)
	}

	currencies, err := f.uc.Currencies(ctx)
	if err != nil || len(currencies) != 2 {
		t.Fatalf("unexpected currencies %+v err=%v", currencies, err)
	}
}

func TestCatalogCompanyCurrency(t *testing.T) {
	f := newCatalogFixture()

	currency, err := f.uc.CompanyCurrency(context.Background(), f.company.ID)
	if err != nil || currency.Code != "AED" || currency.Symbol != "AED" {
		t.Fatalf("unexpected currency %+v err=%v", currency, err)
	}

	f.currencies.Currencies = nil
	currency, err = f.uc.CompanyCurrency(context.Background(), f.company.ID)
	if err != nil || currency.Code != "AED" {
		t.Fatalf("expected bare code fallback, got %+v err=%v", currency, err)
	}

	if _, err := f.uc.CompanyCurrency(context.Background(), uuid.New()); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
