package wire

import (
	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// the gateway posts here without a session, the signature authenticates it
	r.Post("/payment/success/", paymentHandler.Callback)

	r.With(middleware.AuthSession(repo.Session, log)).Get("/payment/{booking_id}/", paymentHandler.InitiatePayment)
}
