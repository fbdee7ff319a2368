package routes

const (
	// Health
	Health = "/health"

	// Property wizard. AddProperty is the entry point that redirects to
	// the first incomplete step; the step paths carry wizard progress in
	// their query strings (propertyId, completedSteps, unitType).
	Properties              = "/owners/properties"
	AddProperty             = "/owners/properties/add-property"
	AddPropertyAddress      = "/owners/properties/add-property/address"
	AddPropertyType         = "/owners/properties/add-property/property-type"
	AddPropertySingleUnit   = "/owners/properties/add-property/single-unit-option"
	AddPropertyMultiUnit    = "/owners/properties/add-property/multi-unit-option"

	// Tenant wizard. Always starts fresh at basic-info; there is no
	// resume-from-draft entry point for tenants.
	Tenants                 = "/owners/tenants"
	AddTenantBasicInfo      = "/owners/tenants/add-tenant/basic-info"
	AddTenantLeaseDates     = "/owners/tenants/add-tenant/lease-dates"
	AddTenantSelectUnit     = "/owners/tenants/add-tenant/select-unit"
	AddTenantSendInvitation = "/owners/tenants/add-tenant/send-invitation"

	// Invitations
	InvitationResend = "/owners/invitations/{id}/resend"
	InvitationRevoke = "/owners/invitations/{id}/revoke"
	InviteAccept     = "/invite/accept"
)
