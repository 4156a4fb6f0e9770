package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/printshop/internal/domain/model"
)

// StatusRepository stores the per-tenant order status registry.
type StatusRepository interface {
	List(ctx context.Context, companyID uuid.UUID) ([]model.OrderStatus, error)
	Create(ctx context.Context, status model.OrderStatus) (*model.OrderStatus, error)
	// Update replaces an entry. A rename carries every order of the tenant
	// holding the previous name along in the same transaction.
	Update(ctx context.Context, status model.OrderStatus) (*model.OrderStatus, error)
}
