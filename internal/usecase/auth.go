package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/printshop/internal/domain/errors"
	"github.com/polkiloo/printshop/internal/domain/model"
	"github.com/polkiloo/printshop/internal/domain/repository"
	pkgAuth "github.com/polkiloo/printshop/internal/pkg/auth"
)

// AuthUseCase handles sign-in and token management.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy}
}

// Login validates credentials and returns auth token.
func (u *AuthUseCase) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts user ID from provided token.
func (u *AuthUseCase) ParseToken(token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// Principal loads the tenant and role of an authenticated user.
func (u *AuthUseCase) Principal(ctx context.Context, userID uuid.UUID) (model.Principal, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return model.Principal{}, err
	}
	return model.Principal{UserID: usr.ID, CompanyID: usr.CompanyID, Role: usr.Role}, nil
}
