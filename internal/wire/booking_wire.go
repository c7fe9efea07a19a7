package wire

import (
	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Get("/book/{travel_id}/", bookingHandler.BookingForm)
		r.Post("/book/{travel_id}/", bookingHandler.CreateBooking)
		r.Get("/booking/confirmation/{booking_id}/", bookingHandler.Confirmation)
		r.Get("/my-bookings/", bookingHandler.MyBookings)
	})
}
