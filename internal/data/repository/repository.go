package repository

import (
	"context"
	"errors"

	"travel-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrSeatsUnavailable is returned when a travel option has fewer available
// seats than a confirmation needs.
var ErrSeatsUnavailable = errors.New("not enough available seats")

// ErrBelowSold is returned when a new seat total cannot cover the seats a
// travel option has already sold.
var ErrBelowSold = errors.New("total seats below seats already sold")

// ErrNotFound is returned by writes whose target or parent row is missing.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate wraps unique constraint violations.
var ErrDuplicate = errors.New("duplicate record")

// querier is the subset shared by the pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Repository struct {
	User         UserRepository
	Session      SessionRepository
	Profile      ProfileRepository
	TravelOption TravelOptionRepository
	TravelImage  TravelImageRepository
	TravelDetail TravelDetailRepository
	Booking      BookingRepository
	Passenger    PassengerRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Session:      NewSessionRepository(db, log),
		Profile:      NewProfileRepository(db, log),
		TravelOption: NewTravelOptionRepository(db, log),
		TravelImage:  NewTravelImageRepository(db, log),
		TravelDetail: NewTravelDetailRepository(db, log),
		Booking:      NewBookingRepository(db, log),
		Passenger:    NewPassengerRepository(db, log),
	}
}

// isUniqueViolation reports whether err is a postgres unique constraint error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
