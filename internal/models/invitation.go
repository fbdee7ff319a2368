package models

import (
	"time"

	"github.com/google/uuid"
)

type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusSent     InvitationStatus = "sent"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusRevoked  InvitationStatus = "revoked"
	InvitationStatusExpired  InvitationStatus = "expired"
)

// Invitation links a tenant to a property through a single-use token.
// Resending revokes the prior invitation and issues a fresh token, so at
// most one invitation per tenant is ever active.
type Invitation struct {
	ID         uuid.UUID        `json:"id"`
	PropertyID uuid.UUID        `json:"property_id"`
	TenantID   uuid.UUID        `json:"tenant_id"`
	Email      string           `json:"email"`
	Name       string           `json:"name"`
	Token      string           `json:"-"`
	Status     InvitationStatus `json:"status"`
	ExpiresAt  time.Time        `json:"expires_at"`
	CreatedAt  time.Time        `json:"created_at"`
	AcceptedAt *time.Time       `json:"accepted_at,omitempty"`
}

func (i *Invitation) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}

// IsActive reports whether the token can still be consumed.
func (i *Invitation) IsActive() bool {
	return (i.Status == InvitationStatusPending || i.Status == InvitationStatusSent) && !i.IsExpired()
}
