package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
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

type BookingService interface {
	BookingForm(ctx context.Context, userID uuid.UUID, travelID string) (*response.BookingFormResponse, error)
	CreateBooking(ctx context.Context, userID uuid.UUID, travelID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetConfirmation(ctx context.Context, userID uuid.UUID, bookingID string) (*response.BookingDetailResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, page, perPage int) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	repo      *repository.Repository
	holder    seathold.Holder
	publisher event.Publisher
	log       *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	holder seathold.Holder,
	publisher event.Publisher,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:      repo,
		holder:    holder,
		publisher: publisher,
		log:       log.With(zap.String("service", "booking")),
	}
}

// BookingForm returns what the client needs to render the booking form,
// with the billing snapshot prefilled from the profile.
func (s *bookingService) BookingForm(ctx context.Context, userID uuid.UUID, travelID string) (*response.BookingFormResponse, error) {
	option, err := findActiveTravelOption(ctx, s.repo, travelID)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID.String(), ErrNotFound)
	}

	profile, err := s.repo.Profile.Ensure(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	bookable := option.AvailableSeats
	if held, err := s.holder.Held(ctx, option.ID.String()); err == nil {
		bookable = max(bookable-held, 0)
	}

	return &response.BookingFormResponse{
		TravelOption:  response.TravelOptionToResponse(option),
		MaxSeats:      min(request.MaxSeatsPerBooking, bookable),
		BookableSeats: bookable,
		Billing: response.BillingResponse{
			Name:          user.FullName(),
			StreetAddress: profile.StreetAddress,
			City:          profile.City,
			PinCode:       profile.PinCode,
			Country:       profile.Country,
		},
		GenderChoices: []string{
			string(entity.GenderMale),
			string(entity.GenderFemale),
			string(entity.GenderOther),
		},
	}, nil
}

// CreateBooking validates the request, holds the seats and stores a pending
// booking with its passengers. Nothing is stored when validation fails.
func (s *bookingService) CreateBooking(ctx context.Context, userID uuid.UUID, travelID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	option, err := findActiveTravelOption(ctx, s.repo, travelID)
	if err != nil {
		return nil, err
	}

	if errs := validateBooking(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed",
			zap.String("travel_id", travelID),
			zap.Any("errors", errs))
		return nil, newValidationError(errs...)
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingID:      utils.GenerateBookingID(),
		UserID:         userID,
		TravelOptionID: option.ID,
		NumberOfSeats:  req.NumberOfSeats,
		TotalPrice:     roundMoney(option.PricePerSeat * float64(req.NumberOfSeats)),
		Status:         entity.BookingStatusPending,
		PaymentStatus:  entity.PaymentStatusPending,
		Billing: entity.Billing{
			Name:          strings.TrimSpace(req.BillingName),
			StreetAddress: strings.TrimSpace(req.BillingStreetAddress),
			City:          strings.TrimSpace(req.BillingCity),
			PinCode:       strings.TrimSpace(req.BillingPinCode),
			Country:       strings.TrimSpace(req.BillingCountry),
		},
	}

	passengers := make([]*entity.Passenger, len(req.Passengers))
	for i, p := range req.Passengers {
		passengers[i] = &entity.Passenger{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			FirstName: strings.TrimSpace(p.FirstName),
			LastName:  strings.TrimSpace(p.LastName),
			Age:       p.Age,
			Gender:    entity.Gender(p.Gender),
		}
	}

	err = s.holder.Hold(ctx, option.ID.String(), booking.BookingID, booking.NumberOfSeats, option.AvailableSeats)
	if errors.Is(err, seathold.ErrInsufficientSeats) {
		return nil, fmt.Errorf("travel option %s: %w", travelID, ErrInsufficientSeats)
	}
	if err != nil {
		return nil, fmt.Errorf("hold seats: %w", err)
	}

	if err := s.repo.Booking.CreateWithPassengers(ctx, booking, passengers); err != nil {
		if relErr := s.holder.Release(ctx, option.ID.String(), booking.BookingID); relErr != nil {
			s.log.Warn("Failed to release seat hold", zap.Error(relErr))
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.BookingID),
		zap.String("user_id", userID.String()),
		zap.String("travel_id", travelID),
		zap.Int("seats", booking.NumberOfSeats),
		zap.Float64("total_price", booking.TotalPrice),
	)

	publish(ctx, s.publisher, s.log, event.BookingCreated, booking, option)

	resp := response.BookingToResponse(booking, option)
	return &resp, nil
}

func (s *bookingService) GetConfirmation(ctx context.Context, userID uuid.UUID, bookingID string) (*response.BookingDetailResponse, error) {
	booking, err := s.repo.Booking.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil || booking.UserID != userID {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrBookingNotFound)
	}

	option, err := s.repo.TravelOption.FindByID(ctx, booking.TravelOptionID)
	if err != nil {
		return nil, fmt.Errorf("find travel option: %w", err)
	}

	passengers, err := s.repo.Passenger.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("find passengers: %w", err)
	}

	return &response.BookingDetailResponse{
		BookingResponse: response.BookingToResponse(booking, option),
		Passengers:      response.PassengersToResponse(passengers),
	}, nil
}

// GetUserBookings lists the user's bookings, newest first.
func (s *bookingService) GetUserBookings(ctx context.Context, userID uuid.UUID, page, perPage int) (*response.PaginatedResponse[response.BookingResponse], error) {
	p := request.NewPage(page, perPage)

	bookings, err := s.repo.Booking.FindByUserID(ctx, userID, p.Size, p.Offset())
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	options := make(map[uuid.UUID]*entity.TravelOption)
	data := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		option, ok := options[b.TravelOptionID]
		if !ok {
			option, err = s.repo.TravelOption.FindByID(ctx, b.TravelOptionID)
			if err != nil {
				return nil, fmt.Errorf("find travel option: %w", err)
			}
			options[b.TravelOptionID] = option
		}
		data = append(data, response.BookingToResponse(b, option))
	}

	return response.NewPaginatedResponse(data, p.Number, p.Size, total), nil
}

// validateBooking collects the struct errors and the passenger count check
// into one ordered list.
func validateBooking(req *request.CreateBookingRequest) []utils.FieldError {
	errs := utils.ValidateStruct(req)

	seatsValid := req.NumberOfSeats >= 1 && req.NumberOfSeats <= request.MaxSeatsPerBooking
	if seatsValid && len(req.Passengers) != req.NumberOfSeats {
		errs = append(errs, utils.FieldError{
			Field:   "passengers",
			Message: fmt.Sprintf("Must list exactly %d passengers, one per seat", req.NumberOfSeats),
		})
	}

	return errs
}

// publish emits a booking event without failing the caller.
func publish(ctx context.Context, p event.Publisher, log *zap.Logger, typ event.Type, b *entity.Booking, option *entity.TravelOption) {
	evt := event.BookingEvent{
		Type:          typ,
		BookingID:     b.BookingID,
		UserID:        b.UserID.String(),
		Seats:         b.NumberOfSeats,
		TotalPrice:    b.TotalPrice,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
	}
	if option != nil {
		evt.TravelID = option.TravelID
	}

	if err := p.Publish(ctx, evt); err != nil {
		log.Warn("Failed to publish booking event",
			zap.Error(err),
			zap.String("type", string(typ)),
			zap.String("booking_id", b.BookingID))
	}
}
