package adaptor

import (
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// BookingForm handles GET /book/{travel_id}/
func (h *BookingHandler) BookingForm(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	form, err := h.service.BookingForm(r.Context(), userID, chi.URLParam(r, "travel_id"))
	if err != nil {
		handleServiceError(w, h.log, err, "load booking form")
		return
	}

	utils.ResponseSuccess(w, "success", form)
}

// CreateBooking handles POST /book/{travel_id}/
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), userID, chi.URLParam(r, "travel_id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create booking")
		return
	}

	w.Header().Set("Location", "/payment/"+booking.BookingID+"/")
	utils.ResponseCreated(w, "Booking created. Proceed to payment.", booking)
}

// Confirmation handles GET /booking/confirmation/{booking_id}/
func (h *BookingHandler) Confirmation(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	booking, err := h.service.GetConfirmation(r.Context(), userID, chi.URLParam(r, "booking_id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get booking confirmation")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// MyBookings handles GET /my-bookings/?page=&per_page=
func (h *BookingHandler) MyBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	page := utils.QueryInt(query, "page", 1)
	perPage := utils.QueryInt(query, "per_page", 10)

	bookings, err := h.service.GetUserBookings(r.Context(), userID, page, perPage)
	if err != nil {
		handleServiceError(w, h.log, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}
