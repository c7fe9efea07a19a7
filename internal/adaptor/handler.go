package adaptor

import (
	"travel-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Catalog *CatalogHandler
	Booking *BookingHandler
	Payment *PaymentHandler
	Admin   *AdminHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
		Catalog: NewCatalogHandler(service.Catalog, log),
		Booking: NewBookingHandler(service.Booking, log),
		Payment: NewPaymentHandler(service.Payment, log),
		Admin:   NewAdminHandler(service.CatalogAdmin, log),
	}
}
