package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

// statusFor maps a service error to its HTTP status and client message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, usecase.ErrNotFound), errors.Is(err, usecase.ErrBookingNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, usecase.ErrMissingField):
		return http.StatusBadRequest, "Invalid payment response"
	case errors.Is(err, usecase.ErrOrderMismatch):
		return http.StatusBadRequest, "Payment order does not match the booking"
	case errors.Is(err, usecase.ErrSignatureInvalid):
		return http.StatusPaymentRequired, "Payment verification failed"
	case errors.Is(err, usecase.ErrInsufficientSeats):
		return http.StatusConflict, "Not enough seats available"
	case errors.Is(err, usecase.ErrAlreadyExists):
		return http.StatusConflict, "Already exists"
	case errors.Is(err, usecase.ErrInvalidState):
		return http.StatusConflict, "Booking cannot be paid in its current state"
	case errors.Is(err, usecase.ErrGatewayUnavailable):
		return http.StatusServiceUnavailable, "Payment service is unavailable, try again later"
	case errors.Is(err, usecase.ErrGatewayRejected):
		return http.StatusBadGateway, "Payment service rejected the request"
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid username or password"
	case errors.Is(err, usecase.ErrUnauthorized):
		return http.StatusUnauthorized, "Authentication required"
	case errors.Is(err, usecase.ErrForbidden):
		return http.StatusForbidden, "Access denied"
	}
	return http.StatusInternalServerError, "Internal server error"
}

// handleServiceError writes the error response of a failed operation.
// Validation errors carry their field list, server errors are logged at
// error level and everything else at warn.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var verr *usecase.ValidationError
	if errors.As(err, &verr) {
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", verr.Fields)
		return
	}

	code, message := statusFor(err)
	if code == http.StatusInternalServerError {
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
	} else {
		log.Warn(operation+" failed", zap.Error(err), zap.Int("status", code))
	}
	utils.ResponseJSON(w, code, false, message, nil, nil)
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
