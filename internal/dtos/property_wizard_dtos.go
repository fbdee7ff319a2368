package dtos

import (
	"github.com/google/uuid"

	"github.com/waldothedeveloper/rent-jedi-sub001/internal/models"
)

/*──────────────────────────────────────────────────────────
  Step 1 – address
──────────────────────────────────────────────────────────*/

// AddressStepRequest creates the draft on first submission; PropertyID is
// present only when re-entering an already-completed step.
type AddressStepRequest struct {
	PropertyID   string `json:"property_id" validate:"omitempty,uuid4"`
	AddressLine1 string `json:"address_line1" validate:"required,min=3"`
	AddressLine2 string `json:"address_line2" validate:"omitempty"`
	City         string `json:"city" validate:"required,min=2"`
	State        string `json:"state" validate:"required,us_state"`
	Zip          string `json:"zip" validate:"required,numeric,len=5"`
	Country      string `json:"country" validate:"required,min=2"`
}

/*──────────────────────────────────────────────────────────
  Step 2 – name, description, property type, unit type
──────────────────────────────────────────────────────────*/

// PropertyTypeStepRequest requires a draft id from step 1; submitting
// without one is a broken resume chain, not a validation failure.
// The sqft and year fields arrive as numeric strings so non-digit input
// is rejected before conversion.
type PropertyTypeStepRequest struct {
	PropertyID   string `json:"property_id"`
	Name         string `json:"name" validate:"required,min=2"`
	Description  string `json:"description" validate:"omitempty,max=2000"`
	PropertyType string `json:"property_type" validate:"required,property_type"`
	UnitType     string `json:"unit_type" validate:"required,unit_type"`
	YearBuilt    string `json:"year_built" validate:"omitempty,numeric"`
	BuildingSqft string `json:"building_sqft" validate:"omitempty,numeric"`
	LotSqft      string `json:"lot_sqft" validate:"omitempty,numeric"`
}

/*──────────────────────────────────────────────────────────
  Step 3 – unit details (branch by unit type)
──────────────────────────────────────────────────────────*/

type UnitRequest struct {
	UnitNumber         string  `json:"unit_number" validate:"omitempty,max=20"`
	Bedrooms           int     `json:"bedrooms" validate:"min=0,max=50"`
	Bathrooms          float64 `json:"bathrooms" validate:"min=0,max=50"`
	RentAmountCents    int64   `json:"rent_amount_cents" validate:"min=0"`
	DepositAmountCents int64   `json:"deposit_amount_cents" validate:"min=0"`
}

type SingleUnitStepRequest struct {
	PropertyID string      `json:"property_id"`
	Unit       UnitRequest `json:"unit" validate:"required"`
}

type MultiUnitStepRequest struct {
	PropertyID string        `json:"property_id"`
	Units      []UnitRequest `json:"units" validate:"required,min=1,dive"`
}

/*──────────────────────────────────────────────────────────
  Responses
──────────────────────────────────────────────────────────*/

// StepResponse is what every successful step submission returns: the
// updated draft plus the next step's href as computed by the resolver.
type StepResponse struct {
	Property       *models.Property `json:"property,omitempty"`
	CompletedSteps int              `json:"completed_steps"`
	NextHref       string           `json:"next_href"`

	// Advisory address-validation outcome; never blocks submission.
	NormalizedAddress  string `json:"normalized_address,omitempty"`
	AddressesIdentical bool   `json:"addresses_identical,omitempty"`
}

// StepFormResponse seeds a step form when re-entering the wizard.
type StepFormResponse struct {
	Property       *models.Property `json:"property,omitempty"`
	CompletedSteps int              `json:"completed_steps"`
	UnitType       string           `json:"unit_type,omitempty"`
	CanLinkForward bool             `json:"can_link_forward"`
}

// PropertyListItem is a property with its units for the list view.
type PropertyListItem struct {
	Property *models.Property `json:"property"`
	Units    []*models.Unit   `json:"units,omitempty"`
}

func NewPropertyListItem(p *models.Property, units []*models.Unit) PropertyListItem {
	return PropertyListItem{Property: p, Units: units}
}

// ParseID is a tiny helper for the optional uuid fields above.
func ParseID(s string) (uuid.UUID, bool) {
	id, err := uuid.Parse(s)
	return id, err == nil
}
