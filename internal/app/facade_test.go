package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/printshop/internal/domain/errors"
	"github.com/polkiloo/printshop/internal/domain/model"
	"github.com/polkiloo/printshop/internal/pricing"
	"github.com/polkiloo/printshop/internal/registry"
	testhelpers "github.com/polkiloo/printshop/internal/test"
	"github.com/polkiloo/printshop/internal/usecase"
)

type facadeFixture struct {
	company     model.Company
	principal   model.Principal
	order       model.Order
	orders      *testhelpers.OrderRepositoryStub
	attachments *testhelpers.AttachmentRepositoryStub
	cache       *testhelpers.ReadCacheStub
	facade      *PrintshopFacade
}

func newFacadeFixture(t *testing.T) *facadeFixture {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	company := model.Company{ID: uuid.New(), Name: "Acme", BaseCurrency: "AED"}
	admin := model.User{ID: uuid.New(), CompanyID: company.ID, Email: "admin@acme.test", PasswordHash: "hash:secret", Role: model.RoleAdmin}

	order := model.Order{
		ID:            uuid.New(),
		CompanyID:     company.ID,
		ClientName:    "Jane",
		Status:        "New",
		TotalPrice:    decimal.NewFromInt(100),
		PaidAmount:    decimal.Zero,
		Currency:      "AED",
		PaymentStatus: model.PaymentStatusUnpaid,
	}

	statusRepo := testhelpers.StatusRepositoryStub{
		ListFn: testhelpers.StaticStatuses("New", model.StatusReadyForProduction, "Printing", model.StatusDelivered),
	}
	statuses := registry.NewCache(statusRepo)
	users := testhelpers.NewUserRepositoryStub(admin)
	companies := testhelpers.CompanyRepositoryStub{Companies: []model.Company{company}}
	orders := testhelpers.NewOrderRepositoryStub(order)
	tiers := &testhelpers.PricingRepositoryStub{}
	currencies := &testhelpers.CurrencyRepositoryStub{Currencies: []model.Currency{{Code: "AED", Symbol: "AED"}, {Code: "USD", Symbol: "$"}}}
	attachments := &testhelpers.AttachmentRepositoryStub{}
	recorder := &testhelpers.RecorderStub{}
	cache := testhelpers.NewReadCacheStub()

	facade := NewPrintshopFacade(FacadeParams{
		Auth:        usecase.NewAuthUseCase(users, testhelpers.HasherStub{}, testhelpers.StrategyStub{}),
		Orders:      usecase.NewOrderUseCase(orders, companies, currencies, tiers, statuses),
		Lifecycle:   usecase.NewLifecycleUseCase(statuses, orders, recorder),
		Admin:       usecase.NewAdminUseCase(users, testhelpers.HasherStub{}, recorder, logger),
		Catalog:     usecase.NewCatalogUseCase(statuses, statusRepo, tiers, currencies, companies),
		Attachments: usecase.NewAttachmentUseCase(orders, attachments, &testhelpers.ObjectStoreStub{}, recorder, logger),
		Registry:    statuses,
		Companies:   companies,
		Cache:       cache,
		Logger:      logger,
	})

	return &facadeFixture{
		company:     company,
		principal:   model.Principal{UserID: admin.ID, CompanyID: company.ID, Role: model.RoleAdmin},
		order:       order,
		orders:      orders,
		attachments: attachments,
		cache:       cache,
		facade:      facade,
	}
}

func assertInvalidated(t *testing.T, cache *testhelpers.ReadCacheStub, want ...model.ReadPath) {
	t.Helper()
	if len(cache.Invalidations) != 1 {
		t.Fatalf("expected one invalidation, got %v", cache.Invalidations)
	}
	got := cache.Invalidations[0]
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestFacadeAuth(t *testing.T) {
	f := newFacadeFixture(t)
	ctx := context.Background()

	token, err := f.facade.Login(ctx, "admin@acme.test", "secret")
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}
	id, err := f.facade.ParseToken(token)
	if err != nil || id != f.principal.UserID {
		t.Fatalf("unexpected parse result %s err=%v", id, err)
	}
	p, err := f.facade.Principal(ctx, id)
	if err != nil || p != f.principal {
		t.Fatalf("unexpected principal %+v err=%v", p, err)
	}
	if _, err := f.facade.Login(ctx, "admin@acme.test", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestFacadeCreateUser(t *testing.T) {
	f := newFacadeFixture(t)
	usr, err := f.facade.CreateUser(context.Background(), f.principal, usecase.CreateUserInput{
		Email: "sam@acme.test", Password: "123456", FullName: "Sam", Role: model.RoleSales,
	})
	if err != nil || usr.CompanyID != f.company.ID {
		t.Fatalf("unexpected user %+v err=%v", usr, err)
	}
}

func TestFacadeOrdersReadThrough(t *testing.T) {
	f := newFacadeFixture(t)
	ctx := context.Background()

	first, err := f.facade.Orders(ctx, f.company.ID, model.OrderFilter{})
	if err != nil || len(first) != 1 {
		t.Fatalf("unexpected orders %+v err=%v", first, err)
	}
	if !f.cache.Has(f.company.ID, model.OrdersPath) {
		t.Fatal("expected unfiltered list to be cached")
	}

	f.orders.ListErr = errors.New("db down")
	cached, err := f.facade.Orders(ctx, f.company.ID, model.OrderFilter{})
	if err != nil || len(cached) != 1 || cached[0].ID != f.order.ID {
		t.Fatalf("expected cached list, got %+v err=%v", cached, err)
	}
	if !cached[0].TotalPrice.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected decimal to survive the cache, got %s", cached[0].TotalPrice)
	}

	if _, err := f.facade.Orders(ctx, f.company.ID, model.OrderFilter{Status: "New"}); err == nil {
		t.Fatal("expected filtered list to bypass the cache")
	}
}

func TestFacadeCacheFailuresDoNotFailReads(t *testing.T) {
	f := newFacadeFixture(t)
	var buf bytes.Buffer
	f.facade.logger = slog.New(slog.NewJSONHandler(&buf, nil))
	f.cache.GetErr = errors.New("redis down")
	f.cache.SetErr = errors.New("redis down")

	orders, err := f.facade.Orders(context.Background(), f.company.ID, model.OrderFilter{})
	if err != nil || len(orders) != 1 {
		t.Fatalf("unexpected result %+v err=%v", orders, err)
	}
	if !strings.Contains(buf.String(), "read cache lookup failed") || !strings.Contains(buf.String(), "read cache store failed") {
		t.Fatalf("expected cache failures to be logged, got %s", buf.String())
	}
}

func TestFacadeOrderView(t *testing.T) {
	f := newFacadeFixture(t)
	view, err := f.facade.Order(context.Background(), f.company.ID, f.order.ID, pricing.VariantInline)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Order.ID != f.order.ID || view.Price.Primary != "AED 100.00" || view.StatusTextColor == "" {
		t.Fatalf("unexpected view %+v", view)
	}
	if !f.cache.Has(f.company.ID, model.OrderPath(f.order.ID)) {
		t.Fatal("expected order to be cached")
	}
	if _, err := f.facade.Order(context.Background(), f.company.ID, uuid.New(), pricing.VariantInline); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFacadeTransitionsInvalidateAffectedPaths(t *testing.T) {
	f := newFacadeFixture(t)
	ctx := context.Background()
	id := f.order.ID

	tr, err := f.facade.AdvanceStatus(ctx, f.company.ID, id, "Printing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertInvalidated(t, f.cache, tr.Affected...)
	assertInvalidated(t, f.cache, model.OrdersPath, model.OrderPath(id))

	f.cache.Invalidations = nil
	if _, err := f.facade.ConfirmPayment(ctx, f.company.ID, id, usecase.PaymentInput{
		Method: model.PaymentMethodCash, Status: model.PaymentStatusPartial, PaidAmount: decimal.NewFromInt(30),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertInvalidated(t, f.cache, model.OrdersPath, model.OrderPath(id), model.OrderDeliveryPath(id))

	f.cache.Invalidations = nil
	elig, err := f.facade.DeliveryEligibility(ctx, f.company.ID, id)
	if err != nil || !elig.BalanceDue || !elig.Remaining.Equal(decimal.NewFromInt(70)) {
		t.Fatalf("unexpected eligibility %+v err=%v", elig, err)
	}

	if _, err := f.facade.MarkDelivered(ctx, f.company.ID, id, model.PaymentMethodUnset); !errors.Is(err, domainErrors.ErrBalanceDue) {
		t.Fatalf("expected balance due, got %v", err)
	}
	if len(f.cache.Invalidations) != 0 {
		t.Fatal("rejected transition must leave the cache untouched")
	}

	if _, err := f.facade.MarkDelivered(ctx, f.company.ID, id, model.PaymentMethodCOD); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertInvalidated(t, f.cache, model.OrdersPath, model.OrderPath(id), model.OrderDeliveryPath(id))
	if f.cache.Has(f.company.ID, model.OrderDeliveryPath(id)) {
		t.Fatal("expected cached eligibility to be dropped")
	}
}

func TestFacadeCreateOrderInvalidatesList(t *testing.T) {
	f := newFacadeFixture(t)
	tr, err := f.facade.CreateOrder(context.Background(), f.principal, usecase.CreateOrderInput{ClientName: "Bob", TotalPrice: decimal.NewFromInt(5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Order.Status != "New" {
		t.Fatalf("unexpected status %s", tr.Order.Status)
	}
	assertInvalidated(t, f.cache, model.OrdersPath)
}

func TestFacadeAttachments(t *testing.T) {
	f := newFacadeFixture(t)
	ctx := context.Background()

	if _, err := f.facade.Attachments(ctx, f.company.ID, f.order.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	up, err := f.facade.UploadAttachment(ctx, f.principal, f.order.ID, usecase.UploadInput{
		FileType: model.FileTypePrintFile, FileName: "final.pdf", Content: strings.NewReader("%PDF"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertInvalidated(t, f.cache, model.OrderAttachmentsPath(f.order.ID))

	listed, err := f.facade.Attachments(ctx, f.company.ID, f.order.ID)
	if err != nil || len(listed) != 1 || listed[0].FileName != up.Attachment.FileName {
		t.Fatalf("expected fresh attachment list, got %+v err=%v", listed, err)
	}
}

func TestFacadeCatalog(t *testing.T) {
	f := newFacadeFixture(t)
	ctx := context.Background()

	badges, err := f.facade.Statuses(ctx, f.company.ID)
	if err != nil || len(badges) != 4 {
		t.Fatalf("unexpected statuses %+v err=%v", badges, err)
	}
	if _, err := f.facade.CreateStatus(ctx, f.company.ID, usecase.StatusInput{Name: "Proofing", SortOrder: 15, Color: "#abcdef"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	printing := badges[2].Status
	if _, err := f.facade.UpdateStatus(ctx, f.company.ID, printing.ID, usecase.StatusInput{Name: "In Press", SortOrder: 16, Color: "#abcdef"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.cache.Purges) != 2 || f.cache.Has(f.company.ID, model.StatusesPath) {
		t.Fatalf("expected tenant purge after status writes, got %v", f.cache.Purges)
	}
	if _, err := f.facade.CreateStatus(ctx, f.company.ID, usecase.StatusInput{Name: "Bad", Color: "blue"}); !errors.Is(err, domainErrors.ErrInvalidColor) {
		t.Fatalf("expected invalid color, got %v", err)
	}

	if _, err := f.facade.PricingTiers(ctx, f.company.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.facade.CreatePricingTier(ctx, f.company.ID, usecase.TierInput{Name: "rush", MarkupPercent: decimal.NewFromInt(20)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertInvalidated(t, f.cache, model.PricingTiersPath)

	f.cache.Invalidations = nil
	if _, err := f.facade.ExchangeRates(ctx, f.company.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.facade.CreateExchangeRate(ctx, f.company.ID, usecase.RateInput{Currency: "USD", Rate: decimal.RequireFromString("3.67")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertInvalidated(t, f.cache, model.ExchangeRatesPath)

	currencies, err := f.facade.Currencies(ctx)
	if err != nil || len(currencies) != 2 {
		t.Fatalf("unexpected currencies %+v err=%v", currencies, err)
	}
	base, err := f.facade.CompanyCurrency(ctx, f.company.ID)
	if err != nil || base.Code != "AED" {
		t.Fatalf("unexpected base currency %+v err=%v", base, err)
	}
}

func TestFacadeRegistryWorkerContract(t *testing.T) {
	f := newFacadeFixture(t)
	companies, err := f.facade.Companies(context.Background())
	if err != nil || len(companies) != 1 {
		t.Fatalf("unexpected companies %+v err=%v", companies, err)
	}
	snap, err := f.facade.ReloadRegistry(context.Background(), f.company.ID)
	if err != nil || len(snap.Missing()) != 0 {
		t.Fatalf("unexpected snapshot missing=%v err=%v", snap.Missing(), err)
	}
}
