package models

import (
	"time"

	"github.com/google/uuid"
)

type PropertyStatus string

const (
	PropertyStatusDraft      PropertyStatus = "draft"
	PropertyStatusActive     PropertyStatus = "active"
	PropertyStatusComingSoon PropertyStatus = "coming_soon"
	PropertyStatusArchived   PropertyStatus = "archived"
)

type UnitType string

const (
	UnitTypeSingle UnitType = "single_unit"
	UnitTypeMulti  UnitType = "multi_unit"
)

// ParseUnitType converts the query-parameter form to the enum. Unknown
// values come back as the empty UnitType, mirroring "not chosen yet".
func ParseUnitType(s string) UnitType {
	switch UnitType(s) {
	case UnitTypeSingle:
		return UnitTypeSingle
	case UnitTypeMulti:
		return UnitTypeMulti
	default:
		return ""
	}
}

// Property is the aggregate the property wizard builds up. It starts as a
// draft with only an address and owner, and leaves draft status once it
// has a unit type and at least one unit.
type Property struct {
	ID           uuid.UUID      `json:"id"`
	OwnerID      uuid.UUID      `json:"owner_id"`
	Name         string         `json:"name"`
	Description  string         `json:"description,omitempty"`
	PropertyType PropertyType   `json:"property_type,omitempty"`
	UnitType     UnitType       `json:"unit_type,omitempty"`
	AddressLine1 string         `json:"address_line1"`
	AddressLine2 string         `json:"address_line2,omitempty"`
	City         string         `json:"city"`
	State        string         `json:"state"`
	Zip          string         `json:"zip"`
	Country      string         `json:"country"`
	YearBuilt    *int           `json:"year_built,omitempty"`
	BuildingSqft *int           `json:"building_sqft,omitempty"`
	LotSqft      *int           `json:"lot_sqft,omitempty"`
	Status       PropertyStatus `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// HasAddress reports whether step 1 of the wizard has been completed.
func (p *Property) HasAddress() bool {
	return p.AddressLine1 != "" && p.City != "" && p.State != "" && p.Zip != ""
}
