package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateUserRequest is the privileged user creation payload. CompanyID is
// accepted and ignored.
type CreateUserRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FullName  string  `json:"fullName"`
	Role      string  `json:"role"`
	CompanyID *string `json:"companyId,omitempty"`
}

// UserResponse describes a created user.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Role      string    `json:"role"`
	CompanyID uuid.UUID `json:"companyId"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateUserResponse wraps the created user.
type CreateUserResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
}
