package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/printshop/internal/domain/model"
	"github.com/polkiloo/printshop/internal/pricing"
	"github.com/polkiloo/printshop/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Login(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (uuid.UUID, error)
	Principal(ctx context.Context, userID uuid.UUID) (model.Principal, error)
}

// OrderFacade creates and reads tenant orders.
type OrderFacade interface {
	CreateOrder(ctx context.Context, principal model.Principal, in usecase.CreateOrderInput) (usecase.Transition, error)
	Orders(ctx context.Context, companyID uuid.UUID, filter model.OrderFilter) ([]model.Order, error)
	Order(ctx context.Context, companyID, orderID uuid.UUID, variant pricing.Variant) (*usecase.OrderView, error)
}

// LifecycleFacade moves orders through the workflow.
type LifecycleFacade interface {
	AdvanceStatus(ctx context.Context, companyID, orderID uuid.UUID, status string) (usecase.Transition, error)
	ConfirmPayment(ctx context.Context, companyID, orderID uuid.UUID, in usecase.PaymentInput) (usecase.Transition, error)
	MarkDelivered(ctx context.Context, companyID, orderID uuid.UUID, method model.PaymentMethod) (usecase.Transition, error)
	DeliveryEligibility(ctx context.Context, companyID, orderID uuid.UUID) (usecase.Eligibility, error)
}

// AttachmentFacade stores and lists order files.
type AttachmentFacade interface {
	UploadAttachment(ctx context.Context, principal model.Principal, orderID uuid.UUID, in usecase.UploadInput) (usecase.AttachmentUpload, error)
	Attachments(ctx context.Context, companyID, orderID uuid.UUID) ([]model.Attachment, error)
}

// CatalogFacade exposes per-tenant reference data.
type CatalogFacade interface {
	Statuses(ctx context.Context, companyID uuid.UUID) ([]usecase.StatusBadge, error)
	CreateStatus(ctx context.Context, companyID uuid.UUID, in usecase.StatusInput) (*model.OrderStatus, error)
	UpdateStatus(ctx context.Context, companyID, statusID uuid.UUID, in usecase.StatusInput) (*model.OrderStatus, error)
	PricingTiers(ctx context.Context, companyID uuid.UUID) ([]model.PricingTier, error)
	CreatePricingTier(ctx context.Context, companyID uuid.UUID, in usecase.TierInput) (*model.PricingTier, error)
	Currencies(ctx context.Context) ([]model.Currency, error)
	ExchangeRates(ctx context.Context, companyID uuid.UUID) ([]model.ExchangeRate, error)
	CreateExchangeRate(ctx context.Context, companyID uuid.UUID, in usecase.RateInput) (*model.ExchangeRate, error)
	CompanyCurrency(ctx context.Context, companyID uuid.UUID) (*model.Currency, error)
}

// AdminFacade provisions staff accounts.
type AdminFacade interface {
	CreateUser(ctx context.Context, caller model.Principal, in usecase.CreateUserInput) (*model.User, error)
}

// PrintshopFacade aggregates the full set of operations used across handlers.
type PrintshopFacade interface {
	AuthFacade
	OrderFacade
	LifecycleFacade
	AttachmentFacade
	CatalogFacade
	AdminFacade
}
