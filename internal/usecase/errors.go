package usecase

import (
	"errors"

	"travel-booking/internal/gateway"
	"travel-booking/pkg/utils"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrMissingField       = errors.New("missing required field")
	ErrOrderMismatch      = errors.New("order does not belong to booking")
	ErrInsufficientSeats  = errors.New("not enough seats available")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidState       = errors.New("invalid state")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")

	ErrSignatureInvalid   = gateway.ErrSignatureInvalid
	ErrGatewayUnavailable = gateway.ErrGatewayUnavailable
	ErrGatewayRejected    = gateway.ErrGatewayRejected
)

// ValidationError carries every field error of a rejected request, in
// field order.
type ValidationError struct {
	Fields []utils.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed: " + utils.FormatValidationErrors(e.Fields)
}

func newValidationError(fields ...utils.FieldError) error {
	return &ValidationError{Fields: fields}
}
