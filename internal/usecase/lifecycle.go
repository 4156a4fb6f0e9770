package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/printshop/internal/domain/errors"
	"github.com/polkiloo/printshop/internal/domain/model"
	"github.com/polkiloo/printshop/internal/domain/repository"
	"github.com/polkiloo/printshop/internal/metrics"
	"github.com/polkiloo/printshop/internal/registry"
)

// Transition kinds reported to the Recorder.
const (
	KindAdvanceStatus  = "advance_status"
	KindConfirmPayment = "confirm_payment"
	KindMarkDelivered  = "mark_delivered"
)

// StatusSource supplies the registry snapshot of a tenant.
type StatusSource interface {
	Snapshot(ctx context.Context, companyID uuid.UUID) (registry.Snapshot, error)
}

// Recorder receives business counters.
type Recorder interface {
	ObserveTransition(kind, outcome string)
	UserCreated()
	AttachmentUploaded()
}

// Transition is the persisted order after a state change and the read paths
// whose cached views it made stale.
type Transition struct {
	Order    *model.Order
	Affected []model.ReadPath
}

// PaymentInput describes a payment confirmation.
type PaymentInput struct {
	Method     model.PaymentMethod
	Status     model.PaymentStatus
	PaidAmount decimal.Decimal
}

// Eligibility tells whether an order can be delivered without collecting money.
type Eligibility struct {
	Remaining  decimal.Decimal
	BalanceDue bool
}

// DeliveryEligibility computes the outstanding balance of order.
func DeliveryEligibility(order model.Order) Eligibility {
	remaining := order.Remaining()
	return Eligibility{Remaining: remaining, BalanceDue: remaining.IsPositive()}
}

// LifecycleUseCase is the only writer of order status.
type LifecycleUseCase struct {
	statuses StatusSource
	orders   repository.OrderRepository
	recorder Recorder
}

// NewLifecycleUseCase constructs LifecycleUseCase.
func NewLifecycleUseCase(statuses StatusSource, orders repository.OrderRepository, recorder Recorder) *LifecycleUseCase {
	return &LifecycleUseCase{statuses: statuses, orders: orders, recorder: recorder}
}

// AdvanceStatus moves the order to any unguarded status of the tenant registry.
// Ready for Production and Delivered are reachable only through ConfirmPayment
// and MarkDelivered. Re-applying the current status is a successful write.
func (u *LifecycleUseCase) AdvanceStatus(ctx context.Context, companyID, orderID uuid.UUID, status string) (tr Transition, err error) {
	defer func() { u.observe(KindAdvanceStatus, err) }()

	if registry.Guarded(status) {
		return Transition{}, fmt.Errorf("%w: %q", domainErrors.ErrGuardedStatus, status)
	}

	snap, err := u.statuses.Snapshot(ctx, companyID)
	if err != nil {
		return Transition{}, fmt.Errorf("advance status: %w", err)
	}
	if err := snap.Validate(status); err != nil {
		return Transition{}, err
	}

	order, err := u.orders.Update(ctx, companyID, orderID, repository.OrderChanges{Status: &status})
	if err != nil {
		return Transition{}, fmt.Errorf("advance status: %w", err)
	}
	return Transition{
		Order:    order,
		Affected: []model.ReadPath{model.OrdersPath, model.OrderPath(orderID)},
	}, nil
}

// ConfirmPayment records payment and hands the order to production in one update.
func (u *LifecycleUseCase) ConfirmPayment(ctx context.Context, companyID, orderID uuid.UUID, in PaymentInput) (tr Transition, err error) {
	defer func() { u.observe(KindConfirmPayment, err) }()

	if err := validatePayment(in); err != nil {
		return Transition{}, err
	}

	snap, err := u.statuses.Snapshot(ctx, companyID)
	if err != nil {
		return Transition{}, fmt.Errorf("confirm payment: %w", err)
	}
	if err := snap.Require(model.StatusReadyForProduction); err != nil {
		return Transition{}, err
	}

	current, err := u.orders.Get(ctx, companyID, orderID)
	if err != nil {
		return Transition{}, fmt.Errorf("confirm payment: %w", err)
	}
	if in.PaidAmount.GreaterThan(current.TotalPrice) {
		return Transition{}, fmt.Errorf("%w: paid amount exceeds order total", domainErrors.ErrInvalidAmount)
	}

	status := model.StatusReadyForProduction
	method, paymentStatus, paid := in.Method, in.Status, in.PaidAmount
	order, err := u.orders.Update(ctx, companyID, orderID, repository.OrderChanges{
		Status:        &status,
		PaymentMethod: &method,
		PaymentStatus: &paymentStatus,
		PaidAmount:    &paid,
	})
	if err != nil {
		return Transition{}, fmt.Errorf("confirm payment: %w", err)
	}
	return Transition{
		Order:    order,
		Affected: []model.ReadPath{model.OrdersPath, model.OrderPath(orderID), model.OrderDeliveryPath(orderID)},
	}, nil
}

// Eligibility reports the outstanding balance of a stored order.
func (u *LifecycleUseCase) Eligibility(ctx context.Context, companyID, orderID uuid.UUID) (Eligibility, error) {
	order, err := u.orders.Get(ctx, companyID, orderID)
	if err != nil {
		return Eligibility{}, err
	}
	return DeliveryEligibility(*order), nil
}

// MarkDelivered settles and closes the order. With a balance due the caller
// must name the method used to collect it, otherwise a BalanceDueError is returned.
// Settlement always records the full total as paid.
func (u *LifecycleUseCase) MarkDelivered(ctx context.Context, companyID, orderID uuid.UUID, method model.PaymentMethod) (tr Transition, err error) {
	defer func() { u.observe(KindMarkDelivered, err) }()

	if method != model.PaymentMethodUnset && !method.Settles() {
		return Transition{}, domainErrors.ErrInvalidPaymentMethod
	}

	snap, err := u.statuses.Snapshot(ctx, companyID)
	if err != nil {
		return Transition{}, fmt.Errorf("mark delivered: %w", err)
	}
	if err := snap.Require(model.StatusDelivered); err != nil {
		return Transition{}, err
	}

	current, err := u.orders.Get(ctx, companyID, orderID)
	if err != nil {
		return Transition{}, fmt.Errorf("mark delivered: %w", err)
	}
	if e := DeliveryEligibility(*current); e.BalanceDue && method == model.PaymentMethodUnset {
		return Transition{}, &domainErrors.BalanceDueError{Remaining: e.Remaining}
	}

	status := model.StatusDelivered
	paymentStatus := model.PaymentStatusPaid
	changes := repository.OrderChanges{Status: &status, PaymentStatus: &paymentStatus, PaidInFull: true}
	if method != model.PaymentMethodUnset {
		changes.PaymentMethod = &method
	}

	order, err := u.orders.Update(ctx, companyID, orderID, changes)
	if err != nil {
		return Transition{}, fmt.Errorf("mark delivered: %w", err)
	}
	return Transition{
		Order:    order,
		Affected: []model.ReadPath{model.OrdersPath, model.OrderPath(orderID), model.OrderDeliveryPath(orderID)},
	}, nil
}

func validatePayment(in PaymentInput) error {
	switch {
	case in.Method == model.PaymentMethodUnset:
		return domainErrors.ErrPaymentMethodRequired
	case !in.Method.Settles():
		return domainErrors.ErrInvalidPaymentMethod
	case !in.Status.Valid():
		return domainErrors.ErrInvalidPaymentStatus
	case in.PaidAmount.IsNegative():
		return domainErrors.ErrInvalidAmount
	}
	return nil
}

var rejections = []error{
	domainErrors.ErrUnknownStatus,
	domainErrors.ErrRequiredStatusMissing,
	domainErrors.ErrPaymentMethodRequired,
	domainErrors.ErrInvalidPaymentMethod,
	domainErrors.ErrInvalidPaymentStatus,
	domainErrors.ErrInvalidAmount,
	domainErrors.ErrBalanceDue,
	domainErrors.ErrGuardedStatus,
	domainErrors.ErrNotFound,
}

func (u *LifecycleUseCase) observe(kind string, err error) {
	u.recorder.ObserveTransition(kind, transitionOutcome(err))
}

func transitionOutcome(err error) string {
	if err == nil {
		return metrics.OutcomeApplied
	}
	for _, target := range rejections {
		if errors.Is(err, target) {
			return metrics.OutcomeRejected
		}
	}
	return metrics.OutcomeFailed
}
