package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/printshop/internal/domain/model"
	"github.com/polkiloo/printshop/internal/pricing"
	"github.com/polkiloo/printshop/internal/usecase"
)

// facadeStub implements PrintshopFacade with overridable behaviour. Unset
// functions return zero values.
type facadeStub struct {
	LoginFn           func(ctx context.Context, email, password string) (string, error)
	PrincipalFn       func(ctx context.Context, userID uuid.UUID) (model.Principal, error)
	CreateOrderFn     func(ctx context.Context, principal model.Principal, in usecase.CreateOrderInput) (usecase.Transition, error)
	OrdersFn          func(ctx context.Context, companyID uuid.UUID, filter model.OrderFilter) ([]model.Order, error)
	OrderFn           func(ctx context.Context, companyID, orderID uuid.UUID, variant pricing.Variant) (*usecase.OrderView, error)
	AdvanceStatusFn   func(ctx context.Context, companyID, orderID uuid.UUID, status string) (usecase.Transition, error)
	ConfirmPaymentFn  func(ctx context.Context, companyID, orderID uuid.UUID, in usecase.PaymentInput) (usecase.Transition, error)
	MarkDeliveredFn   func(ctx context.Context, companyID, orderID uuid.UUID, method model.PaymentMethod) (usecase.Transition, error)
	EligibilityFn     func(ctx context.Context, companyID, orderID uuid.UUID) (usecase.Eligibility, error)
	UploadFn          func(ctx context.Context, principal model.Principal, orderID uuid.UUID, in usecase.UploadInput) (usecase.AttachmentUpload, error)
	AttachmentsFn     func(ctx context.Context, companyID, orderID uuid.UUID) ([]model.Attachment, error)
	StatusesFn        func(ctx context.Context, companyID uuid.UUID) ([]usecase.StatusBadge, error)
	CreateStatusFn    func(ctx context.Context, companyID uuid.UUID, in usecase.StatusInput) (*model.OrderStatus, error)
	UpdateStatusFn    func(ctx context.Context, companyID, statusID uuid.UUID, in usecase.StatusInput) (*model.OrderStatus, error)
	TiersFn           func(ctx context.Context, companyID uuid.UUID) ([]model.PricingTier, error)
	CreateTierFn      func(ctx context.Context, companyID uuid.UUID, in usecase.TierInput) (*model.PricingTier, error)
	CurrenciesFn      func(ctx context.Context) ([]model.Currency, error)
	RatesFn           func(ctx context.Context, companyID uuid.UUID) ([]model.ExchangeRate, error)
	CreateRateFn      func(ctx context.Context, companyID uuid.UUID, in usecase.RateInput) (*model.ExchangeRate, error)
	CompanyCurrencyFn func(ctx context.Context, companyID uuid.UUID) (*model.Currency, error)
	CreateUserFn      func(ctx context.Context, caller model.Principal, in usecase.CreateUserInput) (*model.User, error)
}

var _ PrintshopFacade = facadeStub{}

func (s facadeStub) Login(ctx context.Context, email, password string) (string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, email, password)
	}
	return "token", nil
}

func (s facadeStub) ParseToken(string) (uuid.UUID, error) {
	return uuid.Nil, nil
}

func (s facadeStub) Principal(ctx context.Context, userID uuid.UUID) (model.Principal, error) {
	if s.PrincipalFn != nil {
		return s.PrincipalFn(ctx, userID)
	}
	return model.Principal{UserID: userID}, nil
}

func (s facadeStub) CreateOrder(ctx context.Context, principal model.Principal, in usecase.CreateOrderInput) (usecase.Transition, error) {
	if s.CreateOrderFn != nil {
		return s.CreateOrderFn(ctx, principal, in)
	}
	return usecase.Transition{Order: &model.Order{}}, nil
}

func (s facadeStub) Orders(ctx context.Context, companyID uuid.UUID, filter model.OrderFilter) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, companyID, filter)
	}
	return nil, nil
}

func (s facadeStub) Order(ctx context.Context, companyID, orderID uuid.UUID, variant pricing.Variant) (*usecase.OrderView, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, companyID, orderID, variant)
	}
	return &usecase.OrderView{}, nil
}

func (s facadeStub) AdvanceStatus(ctx context.Context, companyID, orderID uuid.UUID, status string) (usecase.Transition, error) {
	if s.AdvanceStatusFn != nil {
		return s.AdvanceStatusFn(ctx, companyID, orderID, status)
	}
	return usecase.Transition{Order: &model.Order{ID: orderID, Status: status}}, nil
}

func (s facadeStub) ConfirmPayment(ctx context.Context, companyID, orderID uuid.UUID, in usecase.PaymentInput) (usecase.Transition, error) {
	if s.ConfirmPaymentFn != nil {
		return s.ConfirmPaymentFn(ctx, companyID, orderID, in)
	}
	return usecase.Transition{Order: &model.Order{ID: orderID}}, nil
}

func (s facadeStub) MarkDelivered(ctx context.Context, companyID, orderID uuid.UUID, method model.PaymentMethod) (usecase.Transition, error) {
	if s.MarkDeliveredFn != nil {
		return s.MarkDeliveredFn(ctx, companyID, orderID, method)
	}
	return usecase.Transition{Order: &model.Order{ID: orderID}}, nil
}

func (s facadeStub) DeliveryEligibility(ctx context.Context, companyID, orderID uuid.UUID) (usecase.Eligibility, error) {
	if s.EligibilityFn != nil {
		return s.EligibilityFn(ctx, companyID, orderID)
	}
	return usecase.Eligibility{}, nil
}

func (s facadeStub) UploadAttachment(ctx context.Context, principal model.Principal, orderID uuid.UUID, in usecase.UploadInput) (usecase.AttachmentUpload, error) {
	if s.UploadFn != nil {
		return s.UploadFn(ctx, principal, orderID, in)
	}
	return usecase.AttachmentUpload{Attachment: &model.Attachment{OrderID: orderID}}, nil
}

func (s facadeStub) Attachments(ctx context.Context, companyID, orderID uuid.UUID) ([]model.Attachment, error) {
	if s.AttachmentsFn != nil {
		return s.AttachmentsFn(ctx, companyID, orderID)
	}
	return nil, nil
}

func (s facadeStub) Statuses(ctx context.Context, companyID uuid.UUID) ([]usecase.StatusBadge, error) {
	if s.StatusesFn != nil {
		return s.StatusesFn(ctx, companyID)
	}
	return nil, nil
}

func (s facadeStub) CreateStatus(ctx context.Context, companyID uuid.UUID, in usecase.StatusInput) (*model.OrderStatus, error) {
	if s.CreateStatusFn != nil {
		return s.CreateStatusFn(ctx, companyID, in)
	}
	return &model.OrderStatus{CompanyID: companyID, Name: in.Name, SortOrder: in.SortOrder, Color: in.Color}, nil
}

func (s facadeStub) UpdateStatus(ctx context.Context, companyID, statusID uuid.UUID, in usecase.StatusInput) (*model.OrderStatus, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, companyID, statusID, in)
	}
	return &model.OrderStatus{ID: statusID, CompanyID: companyID, Name: in.Name, SortOrder: in.SortOrder, Color: in.Color}, nil
}

func (s facadeStub) PricingTiers(ctx context.Context, companyID uuid.UUID) ([]model.PricingTier, error) {
	if s.TiersFn != nil {
		return s.TiersFn(ctx, companyID)
	}
	return nil, nil
}

func (s facadeStub) CreatePricingTier(ctx context.Context, companyID uuid.UUID, in usecase.TierInput) (*model.PricingTier, error) {
	if s.CreateTierFn != nil {
		return s.CreateTierFn(ctx, companyID, in)
	}
	return &model.PricingTier{CompanyID: companyID, Name: in.Name, Label: in.Label, MarkupPercent: in.MarkupPercent, IsDefault: in.IsDefault}, nil
}

func (s facadeStub) Currencies(ctx context.Context) ([]model.Currency, error) {
	if s.CurrenciesFn != nil {
		return s.CurrenciesFn(ctx)
	}
	return nil, nil
}

func (s facadeStub) ExchangeRates(ctx context.Context, companyID uuid.UUID) ([]model.ExchangeRate, error) {
	if s.RatesFn != nil {
		return s.RatesFn(ctx, companyID)
	}
	return nil, nil
}

func (s facadeStub) CreateExchangeRate(ctx context.Context, companyID uuid.UUID, in usecase.RateInput) (*model.ExchangeRate, error) {
	if s.CreateRateFn != nil {
		return s.CreateRateFn(ctx, companyID, in)
	}
	return &model.ExchangeRate{CompanyID: companyID, CurrencyCode: in.Currency, RateToCompanyCurrency: in.Rate, IsActive: true}, nil
}

func (s facadeStub) CompanyCurrency(ctx context.Context, companyID uuid.UUID) (*model.Currency, error) {
	if s.CompanyCurrencyFn != nil {
		return s.CompanyCurrencyFn(ctx, companyID)
	}
	return &model.Currency{Code: model.DefaultCurrency}, nil
}

func (s facadeStub) CreateUser(ctx context.Context, caller model.Principal, in usecase.CreateUserInput) (*model.User, error) {
	if s.CreateUserFn != nil {
		return s.CreateUserFn(ctx, caller, in)
	}
	return &model.User{ID: uuid.New(), CompanyID: caller.CompanyID, Email: in.Email, FullName: in.FullName, Role: in.Role}, nil
}
