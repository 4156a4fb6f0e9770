package model

import (
	"time"

	"github.com/google/uuid"
)

// Role grants access to parts of the workflow.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSales      Role = "sales"
	RoleDesigner   Role = "designer"
	RoleProduction Role = "production"
	RoleAccountant Role = "accountant"
)

// Assignable reports whether role may be granted through user creation.
func (r Role) Assignable() bool {
	switch r {
	case RoleSales, RoleDesigner, RoleProduction, RoleAccountant:
		return true
	}
	return false
}

// Company is the tenant boundary.
type Company struct {
	ID           uuid.UUID
	Name         string
	BaseCurrency string
}

// User is a staff member of a company.
type User struct {
	ID           uuid.UUID
	CompanyID    uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	Role         Role
	CreatedAt    time.Time
}

// Principal is the authenticated caller resolved for a request.
type Principal struct {
	UserID    uuid.UUID
	CompanyID uuid.UUID
	Role      Role
}
