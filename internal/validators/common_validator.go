package validators

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vedanthcy46/Crisis-Management-System/internal/utils"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("latitude_range", validateLatitude)
	validate.RegisterValidation("longitude_range", validateLongitude)
}

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// ToMap flattens the errors into the field->message shape used by
// validation error responses.
func (v ValidationErrors) ToMap() map[string]string {
	m := make(map[string]string, len(v))
	for _, err := range v {
		m[err.Field] = err.Message
	}
	return m
}

// ValidateStruct validates a request struct and returns field-level errors.
func ValidateStruct(s interface{}) ValidationErrors {
	var validationErrors ValidationErrors

	err := validate.Struct(s)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, ValidationError{
				Field:   err.Field(),
				Tag:     err.Tag(),
				Message: getErrorMessage(err),
			})
		}
	}

	return validationErrors
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
	case "latitude_range":
		return "Latitude must be between -90 and 90"
	case "longitude_range":
		return "Longitude must be between -180 and 180"
	default:
		return fmt.Sprintf("%s is invalid", err.Field())
	}
}

func validateLatitude(fl validator.FieldLevel) bool {
	return utils.IsValidLatitude(fl.Field().Float())
}

func validateLongitude(fl validator.FieldLevel) bool {
	return utils.IsValidLongitude(fl.Field().Float())
}
