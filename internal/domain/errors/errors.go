package errors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrAlreadyExists         = errors.New("already exists")
	ErrNotFound              = errors.New("not found")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrForbidden             = errors.New("forbidden")
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidRole           = errors.New("invalid role")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrInvalidColor          = errors.New("invalid color")
	ErrUnknownStatus         = errors.New("unknown order status")
	ErrUnknownCurrency       = errors.New("unknown currency")
	ErrRequiredStatusMissing = errors.New("required order status missing")
	ErrPaymentMethodRequired = errors.New("payment method is required")
	ErrInvalidPaymentMethod  = errors.New("invalid payment method")
	ErrInvalidPaymentStatus  = errors.New("invalid payment status")
	ErrBalanceDue            = errors.New("balance due")
	ErrGuardedStatus         = errors.New("order status is reserved for its dedicated transition")
)

// BalanceDueError reports the amount that must be collected before delivery.
type BalanceDueError struct {
	Remaining decimal.Decimal
}

func (e *BalanceDueError) Error() string {
	return fmt.Sprintf("balance due: %s remaining", e.Remaining.StringFixed(2))
}

func (e *BalanceDueError) Unwrap() error {
	return ErrBalanceDue
}

// MissingStatusError names the status a tenant registry lacks.
type MissingStatusError struct {
	Name string
}

func (e *MissingStatusError) Error() string {
	return fmt.Sprintf("order status %q is not configured", e.Name)
}

func (e *MissingStatusError) Unwrap() error {
	return ErrRequiredStatusMissing
}
