package usecase

import (
	"context"
	"math"

	"travel-booking/internal/data/repository"
	"travel-booking/internal/event"
	"travel-booking/internal/gateway"
	"travel-booking/internal/seathold"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

// PaymentGateway is the part of the gateway client the workflow uses.
type PaymentGateway interface {
	KeyID() string
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*gateway.Order, error)
	VerifySignature(orderID, paymentID, signature string) error
}

type Service struct {
	Auth         AuthService
	User         UserService
	Catalog      CatalogService
	CatalogAdmin CatalogAdminService
	Booking      BookingService
	Payment      PaymentService
}

func NewService(
	repo *repository.Repository,
	gw PaymentGateway,
	holder seathold.Holder,
	publisher event.Publisher,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:         NewAuthService(repo, config, log),
		User:         NewUserService(repo, log),
		Catalog:      NewCatalogService(repo, holder, log),
		CatalogAdmin: NewCatalogAdminService(repo, log),
		Booking:      NewBookingService(repo, holder, publisher, log),
		Payment:      NewPaymentService(repo, gw, holder, publisher, config, log),
	}
}

// toMinorUnits converts an amount to the smallest currency unit.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func roundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}
