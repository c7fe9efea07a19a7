package adaptor

import (
	"errors"
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// InitiatePayment handles GET /payment/{booking_id}/
func (h *PaymentHandler) InitiatePayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	checkout, err := h.service.InitiatePayment(r.Context(), userID, chi.URLParam(r, "booking_id"))
	if err != nil {
		handleServiceError(w, h.log, err, "initiate payment")
		return
	}

	utils.ResponseSuccess(w, "success", checkout)
}

// Callback handles POST /payment/success/, posted by the gateway checkout
// as a form. The response tells the client where to go next.
func (h *PaymentHandler) Callback(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		utils.ResponseJSON(w, http.StatusBadRequest, false, "Invalid payment response",
			response.PaymentResultResponse{Redirect: "/"}, nil)
		return
	}

	req := &request.PaymentCallbackRequest{
		PaymentID: r.PostForm.Get("razorpay_payment_id"),
		OrderID:   r.PostForm.Get("razorpay_order_id"),
		Signature: r.PostForm.Get("razorpay_signature"),
		BookingID: r.PostForm.Get("booking_id"),
	}

	booking, err := h.service.ConfirmPayment(r.Context(), req)
	if err != nil {
		h.callbackError(w, err, req.BookingID)
		return
	}

	utils.ResponseSuccess(w, "Payment successful", response.PaymentResultResponse{
		BookingID: booking.BookingID,
		Redirect:  "/booking/confirmation/" + booking.BookingID + "/",
	})
}

// callbackError sends the client home when the callback itself cannot be
// trusted. Other failures leave the booking payable, so the client goes back
// to the payment page whenever the booking is known.
func (h *PaymentHandler) callbackError(w http.ResponseWriter, err error, bookingID string) {
	code, message := statusFor(err)
	result := response.PaymentResultResponse{Redirect: "/"}

	switch {
	case errors.Is(err, usecase.ErrMissingField), errors.Is(err, usecase.ErrOrderMismatch):
	case errors.Is(err, usecase.ErrBookingNotFound):
		message = "Booking not found"
	case bookingID != "":
		result.BookingID = bookingID
		result.Redirect = "/payment/" + bookingID + "/"
	}

	if code == http.StatusInternalServerError {
		h.log.Error("Failed to confirm payment", zap.Error(err), zap.String("booking_id", bookingID))
	} else {
		h.log.Warn("Payment callback rejected",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.Int("status", code))
	}

	utils.ResponseJSON(w, code, false, message, result, nil)
}
