package utils

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// FieldError is one (field, message) pair surfaced to the client.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report json names so errors line up with the request body
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	return v
}

// ValidateStruct returns the field errors of data in declaration order, or
// nil when data is valid.
func ValidateStruct(data interface{}) []FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var errors []FieldError
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range validationErrors {
			errors = append(errors, FieldError{
				Field:   fieldPath(fe),
				Message: getErrorMessage(fe),
			})
		}
	}

	return errors
}

// fieldPath drops the root struct name: "CreateBookingRequest.passengers[1].age"
// becomes "passengers[1].age".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// converts validator errors to human-readable messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if isNumeric(err.Kind()) {
			return fmt.Sprintf("Must be at least %s", err.Param())
		}
		return fmt.Sprintf("Minimum length is %s", err.Param())
	case "max":
		if isNumeric(err.Kind()) {
			return fmt.Sprintf("Must be at most %s", err.Param())
		}
		return fmt.Sprintf("Maximum length is %s", err.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", err.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", err.Param())
	case "ltefield":
		return fmt.Sprintf("Must not exceed %s", err.Param())
	case "gtfield":
		return fmt.Sprintf("Must be after %s", err.Param())
	case "eqfield":
		return fmt.Sprintf("Must match %s", err.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", err.Param())
	case "oneof":
		options := strings.ReplaceAll(err.Param(), " ", ", ")
		return fmt.Sprintf("Must be one of: %s", options)
	case "url":
		return "Must be a valid URL"
	case "datetime":
		return fmt.Sprintf("Must be a date in %s format", err.Param())
	default:
		return fmt.Sprintf("Invalid %s field", err.Field())
	}
}

func isNumeric(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// FormatValidationErrors joins errors into a single line for logs.
func FormatValidationErrors(errors []FieldError) string {
	msgs := make([]string, 0, len(errors))
	for _, e := range errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(msgs, "; ")
}
