package dtos

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/waldothedeveloper/rent-jedi-sub001/internal/models"
	"github.com/waldothedeveloper/rent-jedi-sub001/internal/utils"
)

// NewValidator builds the validator used by every controller, with the
// domain enums registered as custom tags. Field errors report the json
// name so Details keys line up with what the client submitted.
func NewValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("property_type", func(fl validator.FieldLevel) bool {
		return models.IsValidPropertyType(fl.Field().String())
	})
	_ = v.RegisterValidation("unit_type", func(fl validator.FieldLevel) bool {
		return models.ParseUnitType(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("us_state", func(fl validator.FieldLevel) bool {
		_, err := utils.NormalizeUSState(fl.Field().String())
		return err == nil
	})

	return v
}

// ValidationDetails flattens validator errors into field → message pairs
// for the error envelope, so clients can attach messages to inputs
// without discarding entered values.
func ValidationDetails(err error) map[string]string {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[fe.Field()] = messageFor(fe)
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Must be a valid email address."
	case "numeric":
		return "Must contain only digits."
	case "min":
		return "Too short or too small (minimum " + fe.Param() + ")."
	case "max":
		return "Too long or too large (maximum " + fe.Param() + ")."
	case "property_type":
		return "Unknown property type."
	case "unit_type":
		return "Unit type must be single_unit or multi_unit."
	case "us_state":
		return "Must be a valid US state."
	case "len":
		return "Must be exactly " + fe.Param() + " characters."
	default:
		return "Invalid value."
	}
}
