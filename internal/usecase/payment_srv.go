package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/internal/event"
	"travel-booking/internal/seathold"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentService interface {
	InitiatePayment(ctx context.Context, userID uuid.UUID, bookingID string) (*response.CheckoutResponse, error)
	ConfirmPayment(ctx context.Context, req *request.PaymentCallbackRequest) (*response.BookingResponse, error)
}

type paymentService struct {
	repo      *repository.Repository
	gateway   PaymentGateway
	holder    seathold.Holder
	publisher event.Publisher
	config    *utils.Config
	now       func() time.Time
	log       *zap.Logger
}

func NewPaymentService(
	repo *repository.Repository,
	gw PaymentGateway,
	holder seathold.Holder,
	publisher event.Publisher,
	config *utils.Config,
	log *zap.Logger,
) PaymentService {
	return &paymentService{
		repo:      repo,
		gateway:   gw,
		holder:    holder,
		publisher: publisher,
		config:    config,
		now:       time.Now,
		log:       log.With(zap.String("service", "payment")),
	}
}

// InitiatePayment returns the checkout parameters of a pending booking owned
// by userID. The gateway order is created once and reused on later attempts.
// The seat hold is renewed so an attempt after expiry is checked again.
func (s *paymentService) InitiatePayment(ctx context.Context, userID uuid.UUID, bookingID string) (*response.CheckoutResponse, error) {
	booking, err := s.repo.Booking.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil || booking.UserID != userID {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrBookingNotFound)
	}
	if booking.IsPaid() {
		return nil, fmt.Errorf("booking %s is already paid: %w", bookingID, ErrInvalidState)
	}
	if booking.Status != entity.BookingStatusPending {
		return nil, fmt.Errorf("booking %s is %s: %w", bookingID, booking.Status, ErrInvalidState)
	}

	option, err := s.repo.TravelOption.FindByID(ctx, booking.TravelOptionID)
	if err != nil {
		return nil, fmt.Errorf("find travel option: %w", err)
	}
	if option == nil {
		return nil, fmt.Errorf("travel option of booking %s: %w", bookingID, ErrNotFound)
	}

	err = s.holder.Hold(ctx, option.ID.String(), booking.BookingID, booking.NumberOfSeats, option.AvailableSeats)
	if errors.Is(err, seathold.ErrInsufficientSeats) {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrInsufficientSeats)
	}
	if err != nil {
		return nil, fmt.Errorf("hold seats: %w", err)
	}

	amount := toMinorUnits(booking.TotalPrice)
	if booking.GatewayOrderID == "" {
		order, err := s.gateway.CreateOrder(ctx, amount, s.config.Gateway.Currency, booking.BookingID)
		if err != nil {
			return nil, fmt.Errorf("create gateway order for %s: %w", bookingID, err)
		}
		if err := s.repo.Booking.SetGatewayOrder(ctx, booking.ID, order.ID); err != nil {
			return nil, fmt.Errorf("store gateway order: %w", err)
		}
		booking.GatewayOrderID = order.ID

		s.log.Info("Payment initiated",
			zap.String("booking_id", bookingID),
			zap.String("order_id", order.ID),
			zap.Int64("amount", amount))
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	profile, err := s.repo.Profile.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}

	resp := &response.CheckoutResponse{
		KeyID:       s.gateway.KeyID(),
		OrderID:     booking.GatewayOrderID,
		Amount:      amount,
		Currency:    s.config.Gateway.Currency,
		BookingID:   booking.BookingID,
		Name:        s.config.App.Name,
		Description: fmt.Sprintf("%s to %s", option.Source, option.Destination),
		CallbackURL: s.config.App.PublicBaseURL + "/payment/success/",
		Booking:     response.BookingToResponse(booking, option),
	}
	if user != nil {
		resp.Prefill.Name = user.FullName()
		resp.Prefill.Email = user.Email
	}
	if profile != nil {
		resp.Prefill.Contact = profile.PhoneNumber
	}

	return resp, nil
}

// ConfirmPayment handles the gateway callback. Only the first valid callback
// for a pending booking confirms it and takes its seats; later ones succeed
// without changes. An invalid signature marks the payment failed and leaves
// the booking pending for another attempt.
func (s *paymentService) ConfirmPayment(ctx context.Context, req *request.PaymentCallbackRequest) (*response.BookingResponse, error) {
	if req.PaymentID == "" || req.OrderID == "" || req.Signature == "" || req.BookingID == "" {
		return nil, ErrMissingField
	}

	booking, err := s.repo.Booking.FindByBookingID(ctx, req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s: %w", req.BookingID, ErrBookingNotFound)
	}

	if booking.GatewayOrderID == "" || booking.GatewayOrderID != req.OrderID {
		s.log.Warn("Callback order does not match booking",
			zap.String("booking_id", req.BookingID),
			zap.String("order_id", req.OrderID))
		return nil, fmt.Errorf("booking %s: %w", req.BookingID, ErrOrderMismatch)
	}

	if err := s.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature); err != nil {
		s.log.Warn("Payment signature rejected",
			zap.String("booking_id", req.BookingID),
			zap.String("payment_id", req.PaymentID))

		marked, markErr := s.repo.Booking.MarkPaymentFailed(ctx, booking.ID)
		if markErr != nil {
			return nil, fmt.Errorf("mark payment failed: %w", markErr)
		}
		if marked {
			booking.PaymentStatus = entity.PaymentStatusFailed
			publish(ctx, s.publisher, s.log, event.PaymentFailed, booking, nil)
		}
		return nil, fmt.Errorf("booking %s: %w", req.BookingID, ErrSignatureInvalid)
	}

	allocation, err := s.repo.Booking.ConfirmPayment(ctx, booking.ID, req.PaymentID, s.now())
	if errors.Is(err, repository.ErrSeatsUnavailable) {
		return nil, fmt.Errorf("booking %s: %w", req.BookingID, ErrInsufficientSeats)
	}
	if err != nil {
		return nil, fmt.Errorf("confirm payment: %w", err)
	}

	confirmed, err := s.repo.Booking.FindByID(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("reload booking: %w", err)
	}
	if confirmed == nil {
		return nil, fmt.Errorf("booking %s: %w", req.BookingID, ErrBookingNotFound)
	}

	option, err := s.repo.TravelOption.FindByID(ctx, confirmed.TravelOptionID)
	if err != nil {
		return nil, fmt.Errorf("find travel option: %w", err)
	}

	if allocation == nil {
		if !confirmed.IsPaid() {
			return nil, fmt.Errorf("booking %s is %s: %w", req.BookingID, confirmed.Status, ErrInvalidState)
		}
		s.log.Info("Repeated payment callback ignored", zap.String("booking_id", req.BookingID))
		resp := response.BookingToResponse(confirmed, option)
		return &resp, nil
	}

	if err := s.holder.Release(ctx, allocation.TravelOptionID.String(), confirmed.BookingID); err != nil {
		s.log.Warn("Failed to release seat hold", zap.Error(err))
	}

	s.log.Info("Payment confirmed",
		zap.String("booking_id", req.BookingID),
		zap.String("payment_id", req.PaymentID),
		zap.Int("seats", allocation.Seats),
		zap.Int("available_after", allocation.AvailableAfter))

	publish(ctx, s.publisher, s.log, event.BookingConfirmed, confirmed, option)

	resp := response.BookingToResponse(confirmed, option)
	return &resp, nil
}
