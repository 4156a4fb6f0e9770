package model

import "github.com/google/uuid"

// ReadPath names a cached tenant view that a write may make stale.
type ReadPath string

const (
	OrdersPath        ReadPath = "orders"
	StatusesPath      ReadPath = "statuses"
	PricingTiersPath  ReadPath = "pricing-tiers"
	ExchangeRatesPath ReadPath = "exchange-rates"
)

// OrderPath is the detail view of one order.
func OrderPath(id uuid.UUID) ReadPath {
	return ReadPath("orders/" + id.String())
}

// OrderDeliveryPath is the delivery eligibility view of one order.
func OrderDeliveryPath(id uuid.UUID) ReadPath {
	return OrderPath(id) + "/delivery"
}

// OrderAttachmentsPath is the attachment list of one order.
func OrderAttachmentsPath(id uuid.UUID) ReadPath {
	return OrderPath(id) + "/attachments"
}
