package models

import (
	"time"

	"github.com/google/uuid"
)

type TenantStatus string

const (
	TenantStatusDraft  TenantStatus = "draft"
	TenantStatusActive TenantStatus = "active"
)

// Tenant starts as a draft created by the tenant wizard and becomes active
// only once a unit is assigned. Drafts are invisible to tenant listings.
type Tenant struct {
	ID         uuid.UUID    `json:"id"`
	OwnerID    uuid.UUID    `json:"owner_id"`
	Name       string       `json:"name"`
	Email      *string      `json:"email,omitempty"`
	Phone      *string      `json:"phone,omitempty"`
	LeaseStart time.Time    `json:"lease_start"`
	LeaseEnd   *time.Time   `json:"lease_end,omitempty"`
	UnitID     *uuid.UUID   `json:"unit_id,omitempty"`
	Status     TenantStatus `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// HasEmail reports whether the tenant can receive an invitation.
func (t *Tenant) HasEmail() bool {
	return t.Email != nil && *t.Email != ""
}
