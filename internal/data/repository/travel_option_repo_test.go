package repository

import (
	"context"
	"testing"
	"time"

	"travel-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFindByDestination_AppliesFilters(t *testing.T) {
	mock := newMockPool(t)
	repo := NewTravelOptionRepository(mock, zap.NewNop())

	date := time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC)
	bus := entity.TravelTypeBus

	mock.ExpectQuery(`departure_at::date = \$2::date AND travel_type = \$3 ORDER BY departure_at`).
		WithArgs("Goa", "2026-12-24", "bus").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "travel_id", "travel_type", "source", "destination", "departure_at", "arrival_at",
			"price_per_seat", "total_seats", "available_seats", "operator_name", "is_active",
			"created_at", "updated_at",
		}))

	options, err := repo.FindByDestination(context.Background(), "Goa", TravelOptionFilter{Date: &date, TravelType: &bus})
	require.NoError(t, err)
	assert.Empty(t, options)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListDestinations(t *testing.T) {
	mock := newMockPool(t)
	repo := NewTravelOptionRepository(mock, zap.NewNop())

	img := "https://img.example.com/goa.jpg"
	mock.ExpectQuery(`ORDER BY d.min_price, d.destination LIMIT \$1`).
		WithArgs(6).
		WillReturnRows(pgxmock.NewRows([]string{"destination", "min_price", "travel_types", "image_url"}).
			AddRow("Goa", 900.0, []string{"bus", "flight"}, &img).
			AddRow("Jaipur", 1200.0, []string{"train"}, (*string)(nil)))

	destinations, err := repo.ListDestinations(context.Background(), 6)
	require.NoError(t, err)
	require.Len(t, destinations, 2)
	assert.Equal(t, "Goa", destinations[0].Name)
	assert.Equal(t, []string{"bus", "flight"}, destinations[0].TravelTypes)
	assert.Nil(t, destinations[1].ImageURL)

	mock.ExpectQuery(`ORDER BY d.destination$`).
		WillReturnRows(pgxmock.NewRows([]string{"destination", "min_price", "travel_types", "image_url"}))

	destinations, err = repo.ListDestinations(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, destinations)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func updatedOption() *entity.TravelOption {
	departure := time.Date(2026, 12, 1, 8, 0, 0, 0, time.UTC)
	return &entity.TravelOption{
		Base:         entity.Base{ID: uuid.New(), UpdatedAt: time.Now()},
		TravelID:     "FL00000001",
		TravelType:   entity.TravelTypeFlight,
		Source:       "Mumbai",
		Destination:  "Goa",
		DepartureAt:  departure,
		ArrivalAt:    departure.Add(90 * time.Minute),
		PricePerSeat: 4500,
		TotalSeats:   60,
		OperatorName: "IndiGo",
		IsActive:     true,
	}
}

func TestUpdateTravelOption_KeepsSeatsSoldUnderLock(t *testing.T) {
	mock := newMockPool(t)
	repo := NewTravelOptionRepository(mock, zap.NewNop())

	option := updatedOption()
	option.AvailableSeats = 50 // stale value read before a confirmation

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT total_seats, available_seats FROM travel_options WHERE id = \$1 FOR UPDATE`).
		WithArgs(option.ID).
		WillReturnRows(pgxmock.NewRows([]string{"total_seats", "available_seats"}).AddRow(50, 47))
	mock.ExpectExec(`UPDATE travel_options`).
		WithArgs(option.ID, option.TravelType, "Mumbai", "Goa", option.DepartureAt, option.ArrivalAt,
			4500.0, 60, 57, "IndiGo", true, option.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Update(context.Background(), option, true))
	assert.Equal(t, 57, option.AvailableSeats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTravelOption_BelowSoldRollsBack(t *testing.T) {
	mock := newMockPool(t)
	repo := NewTravelOptionRepository(mock, zap.NewNop())

	option := updatedOption()
	option.TotalSeats = 2

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs(option.ID).
		WillReturnRows(pgxmock.NewRows([]string{"total_seats", "available_seats"}).AddRow(50, 47))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), option, true)
	assert.ErrorIs(t, err, ErrBelowSold)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTravelOption_ExplicitAvailableAndMissingRow(t *testing.T) {
	mock := newMockPool(t)
	repo := NewTravelOptionRepository(mock, zap.NewNop())

	option := updatedOption()
	option.AvailableSeats = 12

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).
		WithArgs(option.ID).
		WillReturnRows(pgxmock.NewRows([]string{"total_seats", "available_seats"}).AddRow(50, 47))
	mock.ExpectExec(`UPDATE travel_options`).
		WithArgs(option.ID, option.TravelType, "Mumbai", "Goa", option.DepartureAt, option.ArrivalAt,
			4500.0, 60, 12, "IndiGo", true, option.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Update(context.Background(), option, false))
	assert.Equal(t, 12, option.AvailableSeats)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(option.ID).WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	err := repo.Update(context.Background(), option, false)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
