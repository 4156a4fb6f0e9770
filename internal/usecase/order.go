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
	"github.com/polkiloo/printshop/internal/pricing"
	"github.com/polkiloo/printshop/internal/registry"
)

// CreateOrderInput carries the fields a salesperson supplies for a new order.
type CreateOrderInput struct {
	ClientName     string               `validate:"required,max=200"`
	ClientEmail    string               `validate:"omitempty,email"`
	DeliveryDate   *time.Time
	DeliveryMethod model.DeliveryMethod `validate:"omitempty,oneof=pickup delivery"`
	TotalPrice     decimal.Decimal
	Currency       string `validate:"omitempty,len=3"`
	PricingTierID  *uuid.UUID
}

// OrderView is an order decorated for display.
type OrderView struct {
	Order           model.Order
	Price           pricing.RenderedPrice
	StatusColor     string
	StatusTextColor string
	Eligibility     Eligibility
}

// OrderUseCase creates and reads orders.
type OrderUseCase struct {
	orders     repository.OrderRepository
	companies  repository.CompanyRepository
	currencies repository.CurrencyRepository
	tiers      repository.PricingRepository
	statuses   StatusSource
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	companies repository.CompanyRepository,
	currencies repository.CurrencyRepository,
	tiers repository.PricingRepository,
	statuses StatusSource,
) *OrderUseCase {
	return &OrderUseCase{orders: orders, companies: companies, currencies: currencies, tiers: tiers, statuses: statuses}
}

// Create stores a new unpaid order in the first status of the tenant registry.
func (u *OrderUseCase) Create(ctx context.Context, principal model.Principal, in CreateOrderInput) (Transition, error) {
	in.ClientName = strings.TrimSpace(in.ClientName)
	in.ClientEmail = strings.TrimSpace(in.ClientEmail)
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if err := validateInput(in); err != nil {
		return Transition{}, err
	}
	if in.TotalPrice.IsNegative() {
		return Transition{}, domainErrors.ErrInvalidAmount
	}

	snap, err := u.statuses.Snapshot(ctx, principal.CompanyID)
	if err != nil {
		return Transition{}, fmt.Errorf("create order: %w", err)
	}
	initial, err := snap.Initial()
	if err != nil {
		return Transition{}, err
	}

	base, err := u.baseCurrency(ctx, principal.CompanyID)
	if err != nil {
		return Transition{}, fmt.Errorf("create order: %w", err)
	}

	order := model.Order{
		CompanyID:      principal.CompanyID,
		ClientName:     in.ClientName,
		ClientEmail:    in.ClientEmail,
		DeliveryDate:   in.DeliveryDate,
		DeliveryMethod: in.DeliveryMethod,
		Status:         initial.Name,
		TotalPrice:     in.TotalPrice,
		PaidAmount:     decimal.Zero,
		Currency:       in.Currency,
		PaymentStatus:  model.PaymentStatusUnpaid,
		CreatedBy:      principal.UserID,
	}
	if order.DeliveryMethod == "" {
		order.DeliveryMethod = model.DeliveryMethodPickup
	}
	if order.Currency == "" {
		order.Currency = base
	}

	if order.Currency != base {
		if _, err := u.currencies.GetCurrency(ctx, order.Currency); err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return Transition{}, domainErrors.ErrUnknownCurrency
			}
			return Transition{}, fmt.Errorf("create order: %w", err)
		}
		rates, err := u.currencies.ListRates(ctx, principal.CompanyID, order.Currency)
		if err != nil {
			return Transition{}, fmt.Errorf("create order: %w", err)
		}
		if amount, ok := pricing.BaseAmount(order.TotalPrice, order.Currency, rates); ok {
			order.BaseAmount = &amount
		}
	}

	tierID, err := u.resolveTier(ctx, principal.CompanyID, in.PricingTierID)
	if err != nil {
		return Transition{}, err
	}
	order.PricingTierID = tierID

	created, err := u.orders.Create(ctx, order)
	if err != nil {
		return Transition{}, fmt.Errorf("create order: %w", err)
	}
	return Transition{Order: created, Affected: []model.ReadPath{model.OrdersPath}}, nil
}

func (u *OrderUseCase) resolveTier(ctx context.Context, companyID uuid.UUID, requested *uuid.UUID) (*uuid.UUID, error) {
	if requested != nil {
		tier, err := u.tiers.GetTier(ctx, companyID, *requested)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown pricing tier", domainErrors.ErrInvalidInput)
			}
			return nil, fmt.Errorf("create order: %w", err)
		}
		return &tier.ID, nil
	}

	tier, err := u.tiers.DefaultTier(ctx, companyID)
	switch {
	case err == nil:
		return &tier.ID, nil
	case errors.Is(err, domainErrors.ErrNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("create order: %w", err)
	}
}

func (u *OrderUseCase) baseCurrency(ctx context.Context, companyID uuid.UUID) (string, error) {
	company, err := u.companies.GetByID(ctx, companyID)
	if err != nil {
		return "", err
	}
	if company.BaseCurrency == "" {
		return model.DefaultCurrency, nil
	}
	return company.BaseCurrency, nil
}

// Get returns a tenant order.
func (u *OrderUseCase) Get(ctx context.Context, companyID, orderID uuid.UUID) (*model.Order, error) {
	return u.orders.Get(ctx, companyID, orderID)
}

// List returns tenant orders, newest first.
func (u *OrderUseCase) List(ctx context.Context, companyID uuid.UUID, filter model.OrderFilter) ([]model.Order, error) {
	return u.orders.List(ctx, companyID, filter)
}

// Describe renders the price, status badge and delivery eligibility of order.
func (u *OrderUseCase) Describe(ctx context.Context, order model.Order, variant pricing.Variant) (*OrderView, error) {
	baseCode, err := u.baseCurrency(ctx, order.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("describe order: %w", err)
	}
	base, err := u.currency(ctx, baseCode)
	if err != nil {
		return nil, fmt.Errorf("describe order: %w", err)
	}

	in := pricing.DisplayInput{
		Amount:      order.TotalPrice,
		Base:        base,
		BaseAmount:  order.BaseAmount,
		Variant:     variant,
		Approximate: true,
	}
	if order.Currency != "" && order.Currency != base.Code {
		foreign, err := u.currency(ctx, order.Currency)
		if err != nil {
			return nil, fmt.Errorf("describe order: %w", err)
		}
		in.Foreign = &foreign
	}

	view := &OrderView{
		Order:       order,
		Price:       pricing.ResolveDisplay(in),
		Eligibility: DeliveryEligibility(order),
	}

	snap, err := u.statuses.Snapshot(ctx, order.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("describe order: %w", err)
	}
	if status, ok := snap.Lookup(order.Status); ok {
		view.StatusColor = status.Color
		view.StatusTextColor = registry.ContrastColor(status.Color)
	}
	return view, nil
}

// currency resolves a code to its display data, falling back to the bare code.
func (u *OrderUseCase) currency(ctx context.Context, code string) (model.Currency, error) {
	c, err := u.currencies.GetCurrency(ctx, code)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return model.Currency{Code: code}, nil
		}
		return model.Currency{}, err
	}
	return *c, nil
}
