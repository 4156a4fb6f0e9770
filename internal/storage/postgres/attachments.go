package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/printshop/internal/domain/model"
)

type attachmentRepository struct {
	storage *Storage
}

func (r *attachmentRepository) Create(ctx context.Context, a model.Attachment) (*model.Attachment, error) {
	const query = `INSERT INTO order_attachments (order_id, company_id, file_type, file_name, url, uploaded_by)
                   VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	err := r.storage.pool.QueryRow(ctx, query, a.OrderID, a.CompanyID, a.FileType, a.FileName, a.URL, a.UploadedBy).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return &a, nil
}

func (r *attachmentRepository) ListByOrder(ctx context.Context, companyID, orderID uuid.UUID) ([]model.Attachment, error) {
	const query = `SELECT id, order_id, company_id, file_type, file_name, url, uploaded_by, created_at
                   FROM order_attachments WHERE company_id=$1 AND order_id=$2 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, companyID, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Attachment
	for rows.Next() {
		var a model.Attachment
		if err := rows.Scan(&a.ID, &a.OrderID, &a.CompanyID, &a.FileType, &a.FileName, &a.URL, &a.UploadedBy, &a.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
