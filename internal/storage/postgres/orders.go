package postgres

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/printshop/internal/domain/errors"
	"github.com/polkiloo/printshop/internal/domain/model"
	"github.com/polkiloo/printshop/internal/domain/repository"
)

type orderRepository struct {
	storage *Storage
}

var orderColumns = []string{
	"id", "company_id", "client_name", "client_email", "delivery_date", "delivery_method",
	"status", "total_price", "paid_amount", "currency", "base_amount", "payment_method",
	"payment_status", "pricing_tier_id", "created_by", "created_at", "updated_at",
}

func scanOrder(row scanner) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID,
		&o.CompanyID,
		&o.ClientName,
		&o.ClientEmail,
		&o.DeliveryDate,
		&o.DeliveryMethod,
		&o.Status,
		&o.TotalPrice,
		&o.PaidAmount,
		&o.Currency,
		&o.BaseAmount,
		&o.PaymentMethod,
		&o.PaymentStatus,
		&o.PricingTierID,
		&o.CreatedBy,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	statement := r.storage.builder.
		Insert("orders").
		Columns(
			"company_id", "client_name", "client_email", "delivery_date", "delivery_method", "status",
			"total_price", "paid_amount", "currency", "base_amount", "payment_method", "payment_status",
			"pricing_tier_id", "created_by",
		).
		Values(
			order.CompanyID, order.ClientName, order.ClientEmail, order.DeliveryDate, order.DeliveryMethod, order.Status,
			order.TotalPrice, order.PaidAmount, order.Currency, order.BaseAmount, order.PaymentMethod, order.PaymentStatus,
			order.PricingTierID, order.CreatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at")

	query, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}
	if err := r.storage.pool.QueryRow(ctx, query, args...).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return nil, translateError(err)
	}
	return &order, nil
}

func (r *orderRepository) Get(ctx context.Context, companyID, orderID uuid.UUID) (*model.Order, error) {
	statement := r.storage.builder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"company_id": companyID, "id": orderID})

	query, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}
	return scanOrder(r.storage.pool.QueryRow(ctx, query, args...))
}

func (r *orderRepository) List(ctx context.Context, companyID uuid.UUID, filter model.OrderFilter) ([]model.Order, error) {
	statement := r.storage.builder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"company_id": companyID}).
		OrderBy("created_at DESC")
	if filter.Status != "" {
		statement = statement.Where(sq.Eq{"status": filter.Status})
	}
	if filter.Limit > 0 {
		statement = statement.Limit(filter.Limit)
	}

	query, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) Update(ctx context.Context, companyID, orderID uuid.UUID, changes repository.OrderChanges) (*model.Order, error) {
	if changes.Empty() {
		return nil, fmt.Errorf("update order: %w", domainErrors.ErrInvalidInput)
	}

	statement := r.storage.builder.Update("orders")
	if changes.Status != nil {
		statement = statement.Set("status", *changes.Status)
	}
	if changes.PaymentMethod != nil {
		statement = statement.Set("payment_method", *changes.PaymentMethod)
	}
	if changes.PaymentStatus != nil {
		statement = statement.Set("payment_status", *changes.PaymentStatus)
	}
	switch {
	case changes.PaidInFull:
		statement = statement.Set("paid_amount", sq.Expr("total_price"))
	case changes.PaidAmount != nil:
		statement = statement.Set("paid_amount", *changes.PaidAmount)
	}
	statement = statement.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"company_id": companyID, "id": orderID}).
		Suffix("RETURNING " + strings.Join(orderColumns, ", "))

	query, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}
	return scanOrder(r.storage.pool.QueryRow(ctx, query, args...))
}
