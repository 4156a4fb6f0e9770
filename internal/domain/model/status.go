package model

import "github.com/google/uuid"

// Load-bearing status names the lifecycle depends on.
const (
	StatusReadyForProduction = "Ready for Production"
	StatusDelivered          = "Delivered"
)

// OrderStatus is one entry of a tenant's ordered status vocabulary.
type OrderStatus struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	Name      string
	SortOrder int
	Color     string
}
