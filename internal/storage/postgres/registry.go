package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/printshop/internal/domain/model"
)

type statusRepository struct {
	storage *Storage
}

func (r *statusRepository) List(ctx context.Context, companyID uuid.UUID) ([]model.OrderStatus, error) {
	const query = `SELECT id, company_id, name, sort_order, color
                   FROM order_statuses WHERE company_id=$1 ORDER BY sort_order, name`
	rows, err := r.storage.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.OrderStatus
	for rows.Next() {
		var s model.OrderStatus
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Name, &s.SortOrder, &s.Color); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *statusRepository) Create(ctx context.Context, status model.OrderStatus) (*model.OrderStatus, error) {
	const query = `INSERT INTO order_statuses (company_id, name, sort_order, color)
                   VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.storage.pool.QueryRow(ctx, query, status.CompanyID, status.Name, status.SortOrder, status.Color).Scan(&status.ID); err != nil {
		return nil, translateError(err)
	}
	return &status, nil
}

func (r *statusRepository) Update(ctx context.Context, status model.OrderStatus) (*model.OrderStatus, error) {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const current = `SELECT name FROM order_statuses WHERE id=$1 AND company_id=$2 FOR UPDATE`
		var previous string
		if err := tx.QueryRow(ctx, current, status.ID, status.CompanyID).Scan(&previous); err != nil {
			return err
		}

		const update = `UPDATE order_statuses SET name=$1, sort_order=$2, color=$3
                        WHERE id=$4 AND company_id=$5`
		if _, err := tx.Exec(ctx, update, status.Name, status.SortOrder, status.Color, status.ID, status.CompanyID); err != nil {
			return err
		}
		if previous == status.Name {
			return nil
		}

		const rename = `UPDATE orders SET status=$1, updated_at=NOW() WHERE company_id=$2 AND status=$3`
		_, err := tx.Exec(ctx, rename, status.Name, status.CompanyID, previous)
		return err
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &status, nil
}
