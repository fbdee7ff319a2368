package controllers

import (
	"net/http"

	"github.com/waldothedeveloper/rent-jedi-sub001/internal/dtos"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/services"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/utils"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/wizard"
)

type PropertyWizardController struct {
	svc services.PropertyWizardService
}

func NewPropertyWizardController(svc services.PropertyWizardService) *PropertyWizardController {
	return &PropertyWizardController{svc: svc}
}

// -----------------------------------------------------------------------------
// GET /owners/properties/add-property
//
// Entry point: resolves the owner's draft state and redirects to the
// first incomplete step (or the properties list when done).
// -----------------------------------------------------------------------------
func (c *PropertyWizardController) EntryHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	dest, err := c.svc.ResolveEntry(r.Context(), owner)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	http.Redirect(w, r, dest.Href(), http.StatusFound)
}

// -----------------------------------------------------------------------------
// GET step pages — seed the form from the draft + URL progress
// -----------------------------------------------------------------------------
func (c *PropertyWizardController) AddressFormHandler(w http.ResponseWriter, r *http.Request) {
	c.stepForm(w, r, wizard.StepAddress)
}

func (c *PropertyWizardController) PropertyTypeFormHandler(w http.ResponseWriter, r *http.Request) {
	c.stepForm(w, r, wizard.StepPropertyType)
}

func (c *PropertyWizardController) UnitDetailsFormHandler(w http.ResponseWriter, r *http.Request) {
	c.stepForm(w, r, wizard.StepUnitDetails)
}

func (c *PropertyWizardController) stepForm(w http.ResponseWriter, r *http.Request, step int) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	prog := wizard.ParseProgress(r.URL.Query())
	resp, err := c.svc.StepForm(r.Context(), owner, prog, step)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// -----------------------------------------------------------------------------
// POST /owners/properties/add-property/address
// -----------------------------------------------------------------------------
func (c *PropertyWizardController) SaveAddressHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req dtos.AddressStepRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := c.svc.SaveAddress(r.Context(), owner, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// -----------------------------------------------------------------------------
// POST /owners/properties/add-property/property-type
// -----------------------------------------------------------------------------
func (c *PropertyWizardController) SavePropertyTypeHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req dtos.PropertyTypeStepRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := c.svc.SavePropertyType(r.Context(), owner, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// -----------------------------------------------------------------------------
// POST /owners/properties/add-property/single-unit-option
// -----------------------------------------------------------------------------
func (c *PropertyWizardController) SaveSingleUnitHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req dtos.SingleUnitStepRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := c.svc.SaveSingleUnit(r.Context(), owner, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// -----------------------------------------------------------------------------
// POST /owners/properties/add-property/multi-unit-option
// -----------------------------------------------------------------------------
func (c *PropertyWizardController) SaveMultiUnitsHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req dtos.MultiUnitStepRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := c.svc.SaveMultiUnits(r.Context(), owner, &req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// -----------------------------------------------------------------------------
// GET /owners/properties
// -----------------------------------------------------------------------------
func (c *PropertyWizardController) ListPropertiesHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	props, err := c.svc.ListProperties(r.Context(), owner)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, props)
}
