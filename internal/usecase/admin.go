package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/printshop/internal/domain/errors"
	"github.com/polkiloo/printshop/internal/domain/model"
	"github.com/polkiloo/printshop/internal/domain/repository"
	pkgAuth "github.com/polkiloo/printshop/internal/pkg/auth"
)

// CreateUserInput is the payload of privileged user creation. CompanyID is
// accepted for compatibility and never used.
type CreateUserInput struct {
	Email     string     `validate:"required,email"`
	Password  string     `validate:"required,min=6"`
	FullName  string     `validate:"required,max=200"`
	Role      model.Role `validate:"required"`
	CompanyID *uuid.UUID
}

// AdminUseCase provisions staff accounts inside the caller's tenant.
type AdminUseCase struct {
	users    repository.UserRepository
	hasher   pkgAuth.PasswordHasher
	recorder Recorder
	logger   *slog.Logger
}

// NewAdminUseCase constructs AdminUseCase.
func NewAdminUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, recorder Recorder, logger *slog.Logger) *AdminUseCase {
	return &AdminUseCase{users: users, hasher: hasher, recorder: recorder, logger: logger}
}

// CreateUser creates a user in caller's company. Only admins may call it and
// admins cannot be created this way.
func (u *AdminUseCase) CreateUser(ctx context.Context, caller model.Principal, in CreateUserInput) (*model.User, error) {
	if caller.Role != model.RoleAdmin {
		return nil, domainErrors.ErrForbidden
	}

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if !in.Role.Assignable() {
		return nil, domainErrors.ErrInvalidRole
	}
	if in.CompanyID != nil && *in.CompanyID != caller.CompanyID {
		u.logger.Warn("ignoring supplied company for new user",
			slog.String("caller", caller.UserID.String()),
			slog.String("company", caller.CompanyID.String()),
		)
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		u.logger.Error("hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("create user: %w", err)
	}

	usr, err := u.users.Create(ctx, model.User{
		CompanyID:    caller.CompanyID,
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     in.FullName,
		Role:         in.Role,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, domainErrors.ErrAlreadyExists
		}
		u.logger.Error("create user",
			slog.String("company", caller.CompanyID.String()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("create user: %w", err)
	}

	u.recorder.UserCreated()
	return usr, nil
}
