package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/devjjun/commu/internal/domain"
	"github.com/go-playground/validator/v10"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("entrytype", validateEntryType)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map.
// This prevents leaking internal struct names and provides cleaner error messages.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "email":
			errs[field] = "Invalid email format"
		case "entrytype":
			errs[field] = "Unknown entry type"
		case "gt":
			errs[field] = "Must be greater than " + e.Param()
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s characters", e.Param())
		case "oneof":
			errs[field] = "Must be one of: " + strings.ReplaceAll(e.Param(), " ", ", ")
		case "uuid":
			errs[field] = "Must be a valid ID"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// validateEntryType accepts known ledger entry types; empty passes so the
// required tag stays in charge of presence.
func validateEntryType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return domain.EntryType(value).Valid()
}
