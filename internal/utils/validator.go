// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/threadforge/pod-backend/internal/models"
)

var validate *validator.Validate

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("print_method", validatePrintMethod)
	validate.RegisterValidation("slug", validateSlug)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validatePrintMethod(fl validator.FieldLevel) bool {
	method := fl.Field().String()
	for _, valid := range models.ValidPrintMethods() {
		if method == string(valid) {
			return true
		}
	}
	return false
}

func validateSlug(fl validator.FieldLevel) bool {
	slug := fl.Field().String()
	if len(slug) < 3 || len(slug) > 60 {
		return false
	}
	return slugPattern.MatchString(slug)
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "required_if":
		return e.Field() + " is required for this configuration"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "gte":
		return e.Field() + " must be at least " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "uuid":
		return e.Field() + " must be a valid UUID"
	case "iso4217":
		return e.Field() + " must be a valid ISO 4217 currency code"
	case "url":
		return e.Field() + " must be a valid URL"
	case "print_method":
		return e.Field() + " is not a supported print method"
	case "slug":
		return e.Field() + " must be 3-60 lowercase characters, digits, and hyphens"
	default:
		return e.Field() + " is invalid"
	}
}
