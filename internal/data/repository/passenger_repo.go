package repository

import (
	"context"
	"fmt"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PassengerRepository interface {
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Passenger, error)
}

type passengerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPassengerRepository(db database.PgxIface, log *zap.Logger) PassengerRepository {
	return &passengerRepository{
		db:  db,
		log: log.With(zap.String("repository", "passenger")),
	}
}

// FindByBookingID returns the manifest in the order it was entered.
func (r *passengerRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Passenger, error) {
	query := `
		SELECT id, booking_id, position, first_name, last_name, age, gender, seat_number, created_at
		FROM passengers
		WHERE booking_id = $1
		ORDER BY position
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to list passengers",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find passengers of booking %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var passengers []*entity.Passenger
	for rows.Next() {
		var p entity.Passenger
		err := rows.Scan(
			&p.ID,
			&p.BookingID,
			&p.Position,
			&p.FirstName,
			&p.LastName,
			&p.Age,
			&p.Gender,
			&p.SeatNumber,
			&p.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan passenger row", zap.Error(err))
			return nil, fmt.Errorf("scan passenger row: %w", err)
		}
		passengers = append(passengers, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate passenger rows: %w", err)
	}

	return passengers, nil
}

func insertPassengers(ctx context.Context, q querier, bookingID uuid.UUID, passengers []*entity.Passenger) error {
	query := `
		INSERT INTO passengers (id, booking_id, position, first_name, last_name, age, gender, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for i, p := range passengers {
		p.BookingID = bookingID
		p.Position = i + 1

		_, err := q.Exec(ctx, query,
			p.ID,
			p.BookingID,
			p.Position,
			p.FirstName,
			p.LastName,
			p.Age,
			p.Gender,
			p.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert passenger %d: %w", p.Position, err)
		}
	}

	return nil
}

// assignSeatNumbers labels the passengers of a booking after the highest
// seat label already issued on the travel option: S<n+1>, S<n+2>...
// Callers hold the travel option row lock.
func assignSeatNumbers(ctx context.Context, q querier, bookingID, travelOptionID uuid.UUID) error {
	_, err := q.Exec(ctx, `
		UPDATE passengers
		SET seat_number = 'S' || (taken.n + position)::text
		FROM (
			SELECT COALESCE(MAX(SUBSTRING(p.seat_number FROM 2)::int), 0) AS n
			FROM passengers p
			JOIN bookings b ON b.id = p.booking_id
			WHERE b.travel_option_id = $2 AND p.seat_number <> ''
		) taken
		WHERE booking_id = $1`,
		bookingID, travelOptionID,
	)
	if err != nil {
		return fmt.Errorf("assign seat numbers: %w", err)
	}
	return nil
}
