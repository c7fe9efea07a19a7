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

// TravelOptionFilter narrows a destination listing. Nil fields are ignored.
type TravelOptionFilter struct {
	Date       *time.Time
	TravelType *entity.TravelType
}

type TravelOptionRepository interface {
	Create(ctx context.Context, option *entity.TravelOption) error
	Update(ctx context.Context, option *entity.TravelOption, keepSold bool) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TravelOption, error)
	FindByTravelID(ctx context.Context, travelID string) (*entity.TravelOption, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.TravelOption, error)
	CountAll(ctx context.Context) (int64, error)
	FindByDestination(ctx context.Context, destination string, filter TravelOptionFilter) ([]*entity.TravelOption, error)
	ListDestinations(ctx context.Context, limit int) ([]*entity.Destination, error)
}

type travelOptionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTravelOptionRepository(db database.PgxIface, log *zap.Logger) TravelOptionRepository {
	return &travelOptionRepository{
		db:  db,
		log: log.With(zap.String("repository", "travel_option")),
	}
}

const travelOptionColumns = `id, travel_id, travel_type, source, destination, departure_at,
		       arrival_at, price_per_seat, total_seats, available_seats,
		       operator_name, is_active, created_at, updated_at`

func (r *travelOptionRepository) Create(ctx context.Context, option *entity.TravelOption) error {
	query := `
		INSERT INTO travel_options (id, travel_id, travel_type, source, destination, departure_at,
		                            arrival_at, price_per_seat, total_seats, available_seats,
		                            operator_name, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		option.ID,
		option.TravelID,
		option.TravelType,
		option.Source,
		option.Destination,
		option.DepartureAt,
		option.ArrivalAt,
		option.PricePerSeat,
		option.TotalSeats,
		option.AvailableSeats,
		option.OperatorName,
		option.IsActive,
		option.CreatedAt,
		option.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return fmt.Errorf("create travel option %s: %w", option.TravelID, ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to create travel option",
			zap.Error(err),
			zap.String("travel_id", option.TravelID),
		)
		return fmt.Errorf("create travel option %s: %w", option.TravelID, err)
	}

	return nil
}

// Update rewrites every field except the public travel id. The row is locked
// first; with keepSold the available seats become the new total minus the
// seats sold at that moment, otherwise option.AvailableSeats is written as is.
func (r *travelOptionRepository) Update(ctx context.Context, option *entity.TravelOption, keepSold bool) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var total, available int
		err := tx.QueryRow(ctx,
			`SELECT total_seats, available_seats FROM travel_options WHERE id = $1 FOR UPDATE`,
			option.ID,
		).Scan(&total, &available)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("travel option %s: %w", option.TravelID, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("lock travel option: %w", err)
		}

		if keepSold {
			sold := total - available
			if sold > option.TotalSeats {
				return fmt.Errorf("%d seats sold: %w", sold, ErrBelowSold)
			}
			option.AvailableSeats = option.TotalSeats - sold
		}

		_, err = tx.Exec(ctx, `
			UPDATE travel_options
			SET travel_type = $2, source = $3, destination = $4, departure_at = $5,
			    arrival_at = $6, price_per_seat = $7, total_seats = $8,
			    available_seats = $9, operator_name = $10, is_active = $11,
			    updated_at = $12
			WHERE id = $1`,
			option.ID,
			option.TravelType,
			option.Source,
			option.Destination,
			option.DepartureAt,
			option.ArrivalAt,
			option.PricePerSeat,
			option.TotalSeats,
			option.AvailableSeats,
			option.OperatorName,
			option.IsActive,
			option.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("write travel option: %w", err)
		}
		return nil
	})

	if err != nil && !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrBelowSold) {
		r.log.Error("Failed to update travel option",
			zap.Error(err),
			zap.String("travel_id", option.TravelID),
		)
	}
	if err != nil {
		return fmt.Errorf("update travel option %s: %w", option.TravelID, err)
	}

	return nil
}

func (r *travelOptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TravelOption, error) {
	query := `SELECT ` + travelOptionColumns + ` FROM travel_options WHERE id = $1`

	option, err := scanTravelOption(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find travel option by ID",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return nil, fmt.Errorf("find travel option by ID %s: %w", id.String(), err)
	}

	return option, nil
}

func (r *travelOptionRepository) FindByTravelID(ctx context.Context, travelID string) (*entity.TravelOption, error) {
	query := `SELECT ` + travelOptionColumns + ` FROM travel_options WHERE travel_id = $1`

	option, err := scanTravelOption(r.db.QueryRow(ctx, query, travelID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find travel option",
			zap.Error(err),
			zap.String("travel_id", travelID),
		)
		return nil, fmt.Errorf("find travel option %s: %w", travelID, err)
	}

	return option, nil
}

// FindAll lists every travel option, active or not, newest departure first.
func (r *travelOptionRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.TravelOption, error) {
	query := `
		SELECT ` + travelOptionColumns + `
		FROM travel_options
		ORDER BY departure_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list travel options",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all travel options limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	return collectTravelOptions(rows)
}

func (r *travelOptionRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM travel_options`).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count travel options", zap.Error(err))
		return 0, fmt.Errorf("count travel options: %w", err)
	}
	return count, nil
}

// FindByDestination lists active options departing today or later whose
// destination matches case-insensitively, ordered by departure.
func (r *travelOptionRepository) FindByDestination(ctx context.Context, destination string, filter TravelOptionFilter) ([]*entity.TravelOption, error) {
	query := `
		SELECT ` + travelOptionColumns + `
		FROM travel_options
		WHERE LOWER(destination) = LOWER($1)
		  AND is_active
		  AND departure_at >= CURRENT_DATE
	`
	args := []any{destination}

	if filter.Date != nil {
		args = append(args, filter.Date.Format(time.DateOnly))
		query += fmt.Sprintf(" AND departure_at::date = $%d::date", len(args))
	}
	if filter.TravelType != nil {
		args = append(args, string(*filter.TravelType))
		query += fmt.Sprintf(" AND travel_type = $%d", len(args))
	}
	query += " ORDER BY departure_at"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list travel options by destination",
			zap.Error(err),
			zap.String("destination", destination),
		)
		return nil, fmt.Errorf("find travel options for %s: %w", destination, err)
	}
	defer rows.Close()

	return collectTravelOptions(rows)
}

// ListDestinations aggregates active future options per destination. With a
// positive limit the cheapest destinations come first, otherwise all are
// returned by name. The image is the primary image of the cheapest option
// that has any.
func (r *travelOptionRepository) ListDestinations(ctx context.Context, limit int) ([]*entity.Destination, error) {
	query := `
		SELECT d.destination, d.min_price, d.travel_types, img.image_url
		FROM (
			SELECT destination,
			       MIN(price_per_seat) AS min_price,
			       array_agg(DISTINCT travel_type) AS travel_types
			FROM travel_options
			WHERE is_active AND departure_at >= CURRENT_DATE
			GROUP BY destination
		) d
		LEFT JOIN LATERAL (
			SELECT i.image_url
			FROM travel_options t
			JOIN travel_option_images i ON i.travel_option_id = t.id
			WHERE t.destination = d.destination
			  AND t.is_active AND t.departure_at >= CURRENT_DATE
			ORDER BY t.price_per_seat, i.is_primary DESC, i.display_order
			LIMIT 1
		) img ON TRUE
	`
	var args []any
	if limit > 0 {
		query += " ORDER BY d.min_price, d.destination LIMIT $1"
		args = append(args, limit)
	} else {
		query += " ORDER BY d.destination"
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list destinations", zap.Error(err), zap.Int("limit", limit))
		return nil, fmt.Errorf("list destinations: %w", err)
	}
	defer rows.Close()

	var destinations []*entity.Destination
	for rows.Next() {
		var d entity.Destination
		if err := rows.Scan(&d.Name, &d.MinPrice, &d.TravelTypes, &d.ImageURL); err != nil {
			r.log.Error("Failed to scan destination row", zap.Error(err))
			return nil, fmt.Errorf("scan destination row: %w", err)
		}
		destinations = append(destinations, &d)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate destination rows: %w", err)
	}

	return destinations, nil
}

func scanTravelOption(row pgx.Row) (*entity.TravelOption, error) {
	var t entity.TravelOption
	err := row.Scan(
		&t.ID,
		&t.TravelID,
		&t.TravelType,
		&t.Source,
		&t.Destination,
		&t.DepartureAt,
		&t.ArrivalAt,
		&t.PricePerSeat,
		&t.TotalSeats,
		&t.AvailableSeats,
		&t.OperatorName,
		&t.IsActive,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func collectTravelOptions(rows pgx.Rows) ([]*entity.TravelOption, error) {
	var options []*entity.TravelOption
	for rows.Next() {
		option, err := scanTravelOption(rows)
		if err != nil {
			return nil, fmt.Errorf("scan travel option row: %w", err)
		}
		options = append(options, option)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate travel option rows: %w", err)
	}

	return options, nil
}
