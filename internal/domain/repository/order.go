package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/printshop/internal/domain/model"
)

// OrderChanges lists the columns a single order update writes. Nil fields are left untouched.
type OrderChanges struct {
	Status        *string
	PaymentMethod *model.PaymentMethod
	PaymentStatus *model.PaymentStatus
	PaidAmount    *decimal.Decimal
	// PaidInFull sets paid_amount to the stored total_price and wins over PaidAmount.
	PaidInFull bool
}

// Empty reports whether no column would be written.
func (c OrderChanges) Empty() bool {
	return c.Status == nil && c.PaymentMethod == nil && c.PaymentStatus == nil && c.PaidAmount == nil && !c.PaidInFull
}

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (*model.Order, error)
	Get(ctx context.Context, companyID, orderID uuid.UUID) (*model.Order, error)
	List(ctx context.Context, companyID uuid.UUID, filter model.OrderFilter) ([]model.Order, error)
	// Update applies changes in one statement and returns the stored row.
	Update(ctx context.Context, companyID, orderID uuid.UUID, changes OrderChanges) (*model.Order, error)
}
