package wizard

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/waldothedeveloper/rent-jedi-sub001/internal/models"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/routes"
)

// ResolveProperty maps the owner's persisted draft state to the canonical
// next wizard destination. It is pure and idempotent: the same draft state
// always resolves to the same destination, and nothing is mutated.
//
//	no draft                     → address step, fresh
//	address saved, no unit type  → property-type step, completedSteps=1
//	unit type saved, no units    → unit-details branch, completedSteps=2
//	one or more units            → the properties list (wizard complete)
func ResolveProperty(draft *models.Property, unitCount int) Destination {
	if draft == nil {
		return Destination{Path: routes.AddPropertyAddress, Query: url.Values{}}
	}

	if draft.UnitType == "" {
		return Destination{
			Path: routes.AddPropertyType,
			Query: Progress{
				PropertyID:     draft.ID,
				CompletedSteps: 1,
			}.Encode(),
		}
	}

	if unitCount == 0 {
		return Destination{
			Path: unitDetailsPath(draft.UnitType),
			Query: Progress{
				PropertyID:     draft.ID,
				CompletedSteps: 2,
				UnitType:       draft.UnitType,
			}.Encode(),
		}
	}

	return Destination{Path: routes.Properties, Query: url.Values{}}
}

// NextAfterAddress is the link a successful address submission returns.
func NextAfterAddress(propertyID uuid.UUID) Destination {
	return Destination{
		Path: routes.AddPropertyType,
		Query: Progress{
			PropertyID:     propertyID,
			CompletedSteps: 1,
		}.Encode(),
	}
}

// NextAfterPropertyType branches on the chosen unit type and carries it
// forward in every subsequent link.
func NextAfterPropertyType(propertyID uuid.UUID, unitType models.UnitType) Destination {
	return Destination{
		Path: unitDetailsPath(unitType),
		Query: Progress{
			PropertyID:     propertyID,
			CompletedSteps: 2,
			UnitType:       unitType,
		}.Encode(),
	}
}

// NextAfterUnits terminates the wizard at the properties list.
func NextAfterUnits() Destination {
	return Destination{Path: routes.Properties, Query: url.Values{}}
}

func unitDetailsPath(ut models.UnitType) string {
	if ut == models.UnitTypeMulti {
		return routes.AddPropertyMultiUnit
	}
	return routes.AddPropertySingleUnit
}
