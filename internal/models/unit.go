package models

import (
	"time"

	"github.com/google/uuid"
)

// Unit is a rentable space belonging to exactly one property. Single-unit
// properties hold one implicit unit; multi-unit properties hold 1..N.
type Unit struct {
	ID                 uuid.UUID `json:"id"`
	PropertyID         uuid.UUID `json:"property_id"`
	UnitNumber         string    `json:"unit_number"`
	Bedrooms           int       `json:"bedrooms"`
	Bathrooms          float64   `json:"bathrooms"`
	RentAmountCents    int64     `json:"rent_amount_cents"`
	DepositAmountCents int64     `json:"deposit_amount_cents"`
	CreatedAt          time.Time `json:"created_at"`
}
