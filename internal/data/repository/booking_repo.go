package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// SeatAllocation describes the seats a confirmation took from a travel option.
type SeatAllocation struct {
	TravelOptionID uuid.UUID
	Seats          int
	AvailableAfter int
}

type BookingRepository interface {
	CreateWithPassengers(ctx context.Context, booking *entity.Booking, passengers []*entity.Passenger) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByBookingID(ctx context.Context, bookingID string) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	SetGatewayOrder(ctx context.Context, id uuid.UUID, orderID string) error

	// ConfirmPayment moves a pending booking to confirmed/completed and takes
	// its seats from the travel option in one transaction. It returns nil
	// allocation when the booking was no longer pending, in which case
	// nothing is written.
	ConfirmPayment(ctx context.Context, id uuid.UUID, paymentID string, paidAt time.Time) (*SeatAllocation, error)
	MarkPaymentFailed(ctx context.Context, id uuid.UUID) (bool, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, booking_id, user_id, travel_option_id, number_of_seats, total_price,
		       status, payment_status, payment_method, gateway_order_id, transaction_id,
		       payment_date, billing_name, billing_street_address, billing_city,
		       billing_pin_code, billing_country, created_at, updated_at`

// CreateWithPassengers stores the booking and its passenger manifest
// atomically.
func (r *bookingRepository) CreateWithPassengers(ctx context.Context, booking *entity.Booking, passengers []*entity.Passenger) error {
	if len(passengers) != booking.NumberOfSeats {
		return fmt.Errorf("booking %s has %d seats but %d passengers",
			booking.BookingID, booking.NumberOfSeats, len(passengers))
	}

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO bookings (id, booking_id, user_id, travel_option_id, number_of_seats,
			                      total_price, status, payment_status, billing_name,
			                      billing_street_address, billing_city, billing_pin_code,
			                      billing_country, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			booking.ID,
			booking.BookingID,
			booking.UserID,
			booking.TravelOptionID,
			booking.NumberOfSeats,
			booking.TotalPrice,
			booking.Status,
			booking.PaymentStatus,
			booking.Billing.Name,
			booking.Billing.StreetAddress,
			booking.Billing.City,
			booking.Billing.PinCode,
			booking.Billing.Country,
			booking.CreatedAt,
			booking.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}

		return insertPassengers(ctx, tx, booking.ID, passengers)
	})

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.BookingID),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.BookingID, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByBookingID(ctx context.Context, bookingID string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, bookingID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return nil, fmt.Errorf("find booking %s: %w", bookingID, err)
	}

	return booking, nil
}

// FindByUserID lists a user's bookings, newest first.
func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list user bookings",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings of user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count user bookings",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings of user %s: %w", userID.String(), err)
	}
	return count, nil
}

// SetGatewayOrder stores the remote order reference of a pending booking.
func (r *bookingRepository) SetGatewayOrder(ctx context.Context, id uuid.UUID, orderID string) error {
	query := `
		UPDATE bookings
		SET gateway_order_id = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, id, orderID)
	if err != nil {
		r.log.Error("Failed to store gateway order",
			zap.Error(err),
			zap.String("id", id.String()),
			zap.String("order_id", orderID),
		)
		return fmt.Errorf("set gateway order of booking %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("pending booking %s: %w", id.String(), ErrNotFound)
	}

	return nil
}

func (r *bookingRepository) ConfirmPayment(ctx context.Context, id uuid.UUID, paymentID string, paidAt time.Time) (*SeatAllocation, error) {
	var allocation *SeatAllocation

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var travelOptionID uuid.UUID
		var seats int

		// only the first callback out of pending wins this row
		err := tx.QueryRow(ctx, `
			UPDATE bookings
			SET status = 'confirmed', payment_status = 'completed', payment_method = $2,
			    transaction_id = $3, payment_date = $4, updated_at = $4
			WHERE id = $1 AND status = 'pending' AND payment_status <> 'completed'
			RETURNING travel_option_id, number_of_seats`,
			id, entity.PaymentMethodGateway, paymentID, paidAt,
		).Scan(&travelOptionID, &seats)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("confirm booking: %w", err)
		}

		var available int
		err = tx.QueryRow(ctx, `
			UPDATE travel_options
			SET available_seats = available_seats - $2, updated_at = NOW()
			WHERE id = $1 AND available_seats >= $2
			RETURNING available_seats`,
			travelOptionID, seats,
		).Scan(&available)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("travel option %s: %w", travelOptionID.String(), ErrSeatsUnavailable)
		}
		if err != nil {
			return fmt.Errorf("decrement available seats: %w", err)
		}

		// seats are numbered in the order they are sold
		if err := assignSeatNumbers(ctx, tx, id, travelOptionID); err != nil {
			return err
		}

		allocation = &SeatAllocation{
			TravelOptionID: travelOptionID,
			Seats:          seats,
			AvailableAfter: available,
		}
		return nil
	})

	if err != nil {
		if !errors.Is(err, ErrSeatsUnavailable) {
			r.log.Error("Failed to confirm payment",
				zap.Error(err),
				zap.String("id", id.String()),
			)
		}
		return nil, fmt.Errorf("confirm payment of booking %s: %w", id.String(), err)
	}

	return allocation, nil
}

// MarkPaymentFailed flags a payment attempt as failed unless the booking has
// already been paid. The booking itself stays pending so it can be retried.
func (r *bookingRepository) MarkPaymentFailed(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE bookings
		SET payment_status = 'failed', updated_at = NOW()
		WHERE id = $1 AND payment_status <> 'completed'
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to mark payment failed",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return false, fmt.Errorf("mark payment failed for booking %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.BookingID,
		&b.UserID,
		&b.TravelOptionID,
		&b.NumberOfSeats,
		&b.TotalPrice,
		&b.Status,
		&b.PaymentStatus,
		&b.PaymentMethod,
		&b.GatewayOrderID,
		&b.TransactionID,
		&b.PaymentDate,
		&b.Billing.Name,
		&b.Billing.StreetAddress,
		&b.Billing.City,
		&b.Billing.PinCode,
		&b.Billing.Country,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
