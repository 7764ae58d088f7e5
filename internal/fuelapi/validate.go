package fuelapi

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidatePayload checks a create/update payload's validation tags before any
// network call is made, returning a single user-facing message for the first
// failing field.
func ValidatePayload(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	field := humanField(fe.Field())
	switch fe.Tag() {
	case "required":
		return errors.New(field + " is required")
	case "gt":
		return errors.New(field + " must be greater than " + fe.Param())
	default:
		return errors.New(field + " is invalid")
	}
}

func humanField(name string) string {
	switch name {
	case "VehicleID":
		return "vehicle"
	case "Litres":
		return "volume"
	default:
		return strings.ToLower(name)
	}
}
