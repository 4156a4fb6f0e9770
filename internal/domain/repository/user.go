package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/printshop/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user model.User) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// CompanyRepository reads tenants.
type CompanyRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Company, error)
	List(ctx context.Context) ([]model.Company, error)
}
