package models

// PropertyType is the closed set of property categories an owner can pick
// on step 2 of the wizard. Unrecognized values are rejected at the DTO
// validation layer.
type PropertyType string

const (
	PropertyTypeSingleFamily     PropertyType = "single_family"
	PropertyTypeApartment        PropertyType = "apartment"
	PropertyTypeCondo            PropertyType = "condo"
	PropertyTypeTownhouse        PropertyType = "townhouse"
	PropertyTypeDuplex           PropertyType = "duplex"
	PropertyTypeTriplex          PropertyType = "triplex"
	PropertyTypeFourplex         PropertyType = "fourplex"
	PropertyTypeBungalow         PropertyType = "bungalow"
	PropertyTypeCabin            PropertyType = "cabin"
	PropertyTypeCottage          PropertyType = "cottage"
	PropertyTypeLoft             PropertyType = "loft"
	PropertyTypeStudio           PropertyType = "studio"
	PropertyTypeMobileHome       PropertyType = "mobile_home"
	PropertyTypeManufactured     PropertyType = "manufactured"
	PropertyTypeTinyHouse        PropertyType = "tiny_house"
	PropertyTypeRowHouse         PropertyType = "row_house"
	PropertyTypeBrownstone       PropertyType = "brownstone"
	PropertyTypeVilla            PropertyType = "villa"
	PropertyTypeRanch            PropertyType = "ranch"
	PropertyTypeFarmhouse        PropertyType = "farmhouse"
	PropertyTypeGardenApartment  PropertyType = "garden_apartment"
	PropertyTypeHighRise         PropertyType = "high_rise"
	PropertyTypeMidRise          PropertyType = "mid_rise"
	PropertyTypeLowRise          PropertyType = "low_rise"
	PropertyTypeBasementSuite    PropertyType = "basement_suite"
	PropertyTypeGuestHouse       PropertyType = "guest_house"
	PropertyTypeCarriageHouse    PropertyType = "carriage_house"
	PropertyTypeCoOp             PropertyType = "co_op"
	PropertyTypeMixedUse         PropertyType = "mixed_use"
	PropertyTypeOther            PropertyType = "other"
)

var propertyTypes = map[PropertyType]struct{}{
	PropertyTypeSingleFamily: {}, PropertyTypeApartment: {}, PropertyTypeCondo: {},
	PropertyTypeTownhouse: {}, PropertyTypeDuplex: {}, PropertyTypeTriplex: {},
	PropertyTypeFourplex: {}, PropertyTypeBungalow: {}, PropertyTypeCabin: {},
	PropertyTypeCottage: {}, PropertyTypeLoft: {}, PropertyTypeStudio: {},
	PropertyTypeMobileHome: {}, PropertyTypeManufactured: {}, PropertyTypeTinyHouse: {},
	PropertyTypeRowHouse: {}, PropertyTypeBrownstone: {}, PropertyTypeVilla: {},
	PropertyTypeRanch: {}, PropertyTypeFarmhouse: {}, PropertyTypeGardenApartment: {},
	PropertyTypeHighRise: {}, PropertyTypeMidRise: {}, PropertyTypeLowRise: {},
	PropertyTypeBasementSuite: {}, PropertyTypeGuestHouse: {}, PropertyTypeCarriageHouse: {},
	PropertyTypeCoOp: {}, PropertyTypeMixedUse: {}, PropertyTypeOther: {},
}

// IsValidPropertyType reports membership in the closed enum.
func IsValidPropertyType(s string) bool {
	_, ok := propertyTypes[PropertyType(s)]
	return ok
}
