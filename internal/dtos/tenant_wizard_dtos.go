package dtos

import (
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/models"
)

/*──────────────────────────────────────────────────────────
  Tenant wizard steps
──────────────────────────────────────────────────────────*/

// BasicInfoStepRequest always creates a fresh draft; the tenant wizard
// has no resume entry point. At least one of email/phone is required —
// enforced in the service so the message lands on the email field.
type BasicInfoStepRequest struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" validate:"required,min=1,max=100"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"omitempty"`
	// LeaseStart is collected up front (YYYY-MM-DD) and normalized to
	// UTC midnight; the lease-dates step can amend it.
	LeaseStart string `json:"lease_start" validate:"required,datetime=2006-01-02"`
}

type LeaseDatesStepRequest struct {
	TenantID   string `json:"tenant_id" validate:"required,uuid4"`
	LeaseStart string `json:"lease_start" validate:"required,datetime=2006-01-02"`
	LeaseEnd   string `json:"lease_end" validate:"omitempty,datetime=2006-01-02"`
}

type SelectUnitStepRequest struct {
	TenantID string `json:"tenant_id" validate:"required,uuid4"`
	UnitID   string `json:"unit_id" validate:"required,uuid4"`
}

type SendInvitationRequest struct {
	TenantID string `json:"tenant_id" validate:"required,uuid4"`
}

/*──────────────────────────────────────────────────────────
  Responses
──────────────────────────────────────────────────────────*/

type TenantStepResponse struct {
	Tenant         *models.Tenant `json:"tenant,omitempty"`
	CompletedSteps int            `json:"completed_steps"`
	NextHref       string         `json:"next_href"`
}

// InvitationResult is the structured outcome of a send/resend. Success
// false with a non-nil InvitationID is the partial-success case: the
// invite record exists but the email did not go out.
type InvitationResult struct {
	Success      bool              `json:"success"`
	Message      string            `json:"message"`
	InvitationID *string           `json:"invitation_id,omitempty"`
	Invitation   *models.Invitation `json:"invitation,omitempty"`
	NextHref     string            `json:"next_href,omitempty"`
}

type AcceptInvitationResponse struct {
	Accepted   bool   `json:"accepted"`
	Message    string `json:"message"`
	PropertyID string `json:"property_id,omitempty"`
	TenantID   string `json:"tenant_id,omitempty"`
}
