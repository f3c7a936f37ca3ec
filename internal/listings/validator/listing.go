package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"resourcehub/pkg/geo"
	"resourcehub/pkg/model"
)

// Registration error messages, kept compatible with what the mobile client
// displays. The first failing field wins.
var requiredMessages = map[string]string{
	"Name":            "Name of provider must be provided",
	"OwnerID":         "Owner of provider must be provided",
	"ContactNo":       "Contact Number of provider must be provided",
	"Category":        "Category of provider must be provided",
	"SubCategory":     "Sub Category of provider must be provided",
	"ServingCapacity": "Queue Capacity of provider must be provided",
	"Location":        "Location of provider must be provided",
	"Password":        "Password of provider must be provided",
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ListingValidator struct {
	validate *validator.Validate
}

func NewListingValidator() *ListingValidator {
	v := validator.New()

	// location is stored as "lat,long"
	_ = v.RegisterValidation("latlong", func(fl validator.FieldLevel) bool {
		_, err := geo.ParseLocation(fl.Field().String())
		return err == nil
	})

	return &ListingValidator{
		validate: v,
	}
}

// Validate checks a listing about to be registered. It returns the first
// violation only, as a ValidationError.
func (v *ListingValidator) Validate(listing *model.Listing) error {
	err := v.validate.Struct(listing)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	first := validationErrs[0]
	return v.translate(first)
}

func (v *ListingValidator) translate(fieldErr validator.FieldError) ValidationError {
	field := fieldErr.Field()

	if fieldErr.Tag() == "required" {
		if msg, ok := requiredMessages[field]; ok {
			return ValidationError{Field: field, Message: msg}
		}
		return ValidationError{Field: field, Message: fmt.Sprintf("%s must be provided", field)}
	}

	switch field {
	case "Location":
		return ValidationError{Field: field, Message: "Location must be in lat,long form"}
	case "ServingCapacity":
		return ValidationError{Field: field, Message: "Queue Capacity must be a positive number"}
	case "InQueue", "InStore":
		return ValidationError{Field: field, Message: fmt.Sprintf("%s cannot be negative", field)}
	default:
		return ValidationError{Field: field, Message: fmt.Sprintf("%s is invalid", field)}
	}
}
