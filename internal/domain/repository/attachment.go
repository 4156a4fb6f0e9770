package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/printshop/internal/domain/model"
)

// AttachmentRepository stores attachment metadata rows.
type AttachmentRepository interface {
	Create(ctx context.Context, attachment model.Attachment) (*model.Attachment, error)
	ListByOrder(ctx context.Context, companyID, orderID uuid.UUID) ([]model.Attachment, error)
}
