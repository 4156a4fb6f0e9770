package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/printshop/internal/pricing"
)

// CreateOrderRequest describes a new order.
type CreateOrderRequest struct {
	ClientName     string          `json:"client_name"`
	ClientEmail    string          `json:"client_email"`
	DeliveryDate   *time.Time      `json:"delivery_date"`
	DeliveryMethod string          `json:"delivery_method"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	Currency       string          `json:"currency"`
	PricingTierID  *uuid.UUID      `json:"pricing_tier_id"`
}

// OrderResponse describes a stored order.
type OrderResponse struct {
	ID             uuid.UUID        `json:"id"`
	ClientName     string           `json:"client_name"`
	ClientEmail    string           `json:"client_email,omitempty"`
	DeliveryDate   *time.Time       `json:"delivery_date,omitempty"`
	DeliveryMethod string           `json:"delivery_method"`
	Status         string           `json:"status"`
	TotalPrice     decimal.Decimal  `json:"total_price"`
	PaidAmount     decimal.Decimal  `json:"paid_amount"`
	Currency       string           `json:"currency"`
	BaseAmount     *decimal.Decimal `json:"base_amount,omitempty"`
	PaymentMethod  string           `json:"payment_method,omitempty"`
	PaymentStatus  string           `json:"payment_status"`
	PricingTierID  *uuid.UUID       `json:"pricing_tier_id,omitempty"`
	CreatedBy      uuid.UUID        `json:"created_by"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// EligibilityResponse describes the outstanding balance of an order.
type EligibilityResponse struct {
	Remaining  decimal.Decimal `json:"remaining"`
	BalanceDue bool            `json:"balance_due"`
}

// OrderViewResponse is an order with its rendered price and status badge.
type OrderViewResponse struct {
	Order           OrderResponse         `json:"order"`
	Price           pricing.RenderedPrice `json:"price"`
	StatusColor     string                `json:"status_color,omitempty"`
	StatusTextColor string                `json:"status_text_color,omitempty"`
	Delivery        EligibilityResponse   `json:"delivery"`
}

// AdvanceStatusRequest moves an order to another status.
type AdvanceStatusRequest struct {
	Status string `json:"status"`
}

// PaymentRequest confirms a payment.
type PaymentRequest struct {
	PaymentMethod string          `json:"payment_method"`
	PaymentStatus string          `json:"payment_status"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
}

// DeliverRequest closes an order, naming how any balance was collected.
type DeliverRequest struct {
	BalancePaymentMethod string `json:"balance_payment_method"`
}

// TransitionResponse is the changed order and the read paths to refresh.
type TransitionResponse struct {
	Order   OrderResponse `json:"order"`
	Refresh []string      `json:"refresh"`
}

// BalanceDueResponse rejects delivery while money is outstanding.
type BalanceDueResponse struct {
	Error     string          `json:"error"`
	Remaining decimal.Decimal `json:"remaining"`
}
