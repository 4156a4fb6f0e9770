package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod describes how money for an order was collected.
type PaymentMethod string

const (
	PaymentMethodUnset    PaymentMethod = ""
	PaymentMethodAdvanced PaymentMethod = "advanced"
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCOD      PaymentMethod = "cod"
	PaymentMethodCard     PaymentMethod = "card"
)

// Settles reports whether method may be used to confirm a payment or settle a balance.
func (m PaymentMethod) Settles() bool {
	switch m {
	case PaymentMethodAdvanced, PaymentMethodCash, PaymentMethodCOD:
		return true
	}
	return false
}

// PaymentStatus describes how much of the order total has been collected.
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Valid reports whether status is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPartial, PaymentStatusPaid:
		return true
	}
	return false
}

// DeliveryMethod describes how the finished order leaves the shop.
type DeliveryMethod string

const (
	DeliveryMethodPickup   DeliveryMethod = "pickup"
	DeliveryMethodDelivery DeliveryMethod = "delivery"
)

// Order is a tenant-scoped work item.
type Order struct {
	ID             uuid.UUID
	CompanyID      uuid.UUID
	ClientName     string
	ClientEmail    string
	DeliveryDate   *time.Time
	DeliveryMethod DeliveryMethod
	Status         string
	TotalPrice     decimal.Decimal
	PaidAmount     decimal.Decimal
	Currency       string
	BaseAmount     *decimal.Decimal
	PaymentMethod  PaymentMethod
	PaymentStatus  PaymentStatus
	PricingTierID  *uuid.UUID
	CreatedBy      uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Remaining returns the unpaid part of the order total.
func (o Order) Remaining() decimal.Decimal {
	return o.TotalPrice.Sub(o.PaidAmount)
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	Status string
	Limit  uint64
}
