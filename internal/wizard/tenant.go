package wizard

import (
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/waldothedeveloper/rent-jedi-sub001/internal/routes"
)

// The tenant wizard is deliberately simpler than the property wizard:
// there is no resume-from-draft resolver, every run starts fresh at
// basic-info. Only the forward links are derived here.

const ParamTenantID = "tenantId"

// Tenant wizard step indices.
const (
	TenantStepBasicInfo  = 1
	TenantStepLeaseDates = 2
	TenantStepSelectUnit = 3
	TenantStepInvitation = 4
)

func tenantQuery(tenantID uuid.UUID, completed int) url.Values {
	q := url.Values{}
	q.Set(ParamTenantID, tenantID.String())
	q.Set(ParamCompletedSteps, strconv.Itoa(completed))
	return q
}

// NextAfterBasicInfo links to the lease-dates step for the new draft.
func NextAfterBasicInfo(tenantID uuid.UUID) Destination {
	return Destination{Path: routes.AddTenantLeaseDates, Query: tenantQuery(tenantID, 1)}
}

// NextAfterLeaseDates links to unit selection.
func NextAfterLeaseDates(tenantID uuid.UUID) Destination {
	return Destination{Path: routes.AddTenantSelectUnit, Query: tenantQuery(tenantID, 2)}
}

// NextAfterSelectUnit links to the optional invitation step.
func NextAfterSelectUnit(tenantID uuid.UUID) Destination {
	return Destination{Path: routes.AddTenantSendInvitation, Query: tenantQuery(tenantID, 3)}
}

// NextAfterInvitation terminates the tenant wizard at the tenant list.
func NextAfterInvitation() Destination {
	return Destination{Path: routes.Tenants, Query: url.Values{}}
}
