package controllers

import (
	"net/http"

	"github.com/waldothedeveloper/rent-jedi-sub001/internal/dtos"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/services"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/utils"
)

type TenantWizardController struct {
	svc     services.TenantWizardService
	invites services.InvitationService
}

func NewTenantWizardController(
	svc services.TenantWizardService,
	invites services.InvitationService,
) *TenantWizardController {
	return &TenantWizardController{svc: svc, invites: invites}
}

// -----------------------------------------------------------------------------
// POST /owners/tenants/add-tenant/basic-info
// -----------------------------------------------------------------------------
func (c *TenantWizardController) BasicInfoHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req dtos.BasicInfoStepRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := c.svc.CreateBasicInfo(r.Context(), owner, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// -----------------------------------------------------------------------------
// POST /owners/tenants/add-tenant/lease-dates
// -----------------------------------------------------------------------------
func (c *TenantWizardController) LeaseDatesHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req dtos.LeaseDatesStepRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := c.svc.SaveLeaseDates(r.Context(), owner, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// -----------------------------------------------------------------------------
// POST /owners/tenants/add-tenant/select-unit
//
// Activation: before this, the draft is invisible to tenant listings.
// -----------------------------------------------------------------------------
func (c *TenantWizardController) SelectUnitHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req dtos.SelectUnitStepRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := c.svc.SelectUnit(r.Context(), owner, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// -----------------------------------------------------------------------------
// POST /owners/tenants/add-tenant/send-invitation
// -----------------------------------------------------------------------------
func (c *TenantWizardController) SendInvitationHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req dtos.SendInvitationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	tenantID, _ := dtos.ParseID(req.TenantID)
	result, err := c.invites.Send(r.Context(), owner, tenantID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	// Partial success (record created, email failed) still returns 200
	// with success=false so the client can offer a resend.
	utils.RespondWithJSON(w, http.StatusOK, result)
}

// -----------------------------------------------------------------------------
// GET /owners/tenants
// -----------------------------------------------------------------------------
func (c *TenantWizardController) ListTenantsHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	tenants, err := c.svc.ListTenants(r.Context(), owner)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tenants)
}
