package handler

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// fieldErrors converts validator failures into a field-to-message map.
// Returns false when err is not a set of field validation errors.
func fieldErrors(err error) (map[string]string, bool) {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil, false
	}

	errors := make(map[string]string)
	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required":
			errors[field] = "field is required"
		case "email":
			errors[field] = "invalid email format"
		case "min":
			errors[field] = "must be at least " + e.Param() + " characters"
		case "max":
			errors[field] = "must be at most " + e.Param() + " characters"
		default:
			errors[field] = "validation failed on " + e.Tag()
		}
	}
	return errors, true
}
