package repository

import (
	"context"
	"errors"
	"fmt"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TravelDetailRepository interface {
	FindByTravelOption(ctx context.Context, travelOptionID uuid.UUID) (*entity.TravelDetail, error)
	Upsert(ctx context.Context, detail *entity.TravelDetail) error
}

type travelDetailRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTravelDetailRepository(db database.PgxIface, log *zap.Logger) TravelDetailRepository {
	return &travelDetailRepository{
		db:  db,
		log: log.With(zap.String("repository", "travel_detail")),
	}
}

func (r *travelDetailRepository) FindByTravelOption(ctx context.Context, travelOptionID uuid.UUID) (*entity.TravelDetail, error) {
	query := `
		SELECT id, travel_option_id, description, created_at, updated_at
		FROM travel_option_details
		WHERE travel_option_id = $1
	`

	var d entity.TravelDetail
	err := r.db.QueryRow(ctx, query, travelOptionID).Scan(
		&d.ID,
		&d.TravelOptionID,
		&d.Description,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find travel detail",
			zap.Error(err),
			zap.String("travel_option_id", travelOptionID.String()),
		)
		return nil, fmt.Errorf("find detail of travel option %s: %w", travelOptionID.String(), err)
	}

	return &d, nil
}

func (r *travelDetailRepository) Upsert(ctx context.Context, detail *entity.TravelDetail) error {
	query := `
		INSERT INTO travel_option_details (id, travel_option_id, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (travel_option_id) DO UPDATE
		SET description = EXCLUDED.description, updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		detail.ID,
		detail.TravelOptionID,
		detail.Description,
		detail.CreatedAt,
		detail.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to upsert travel detail",
			zap.Error(err),
			zap.String("travel_option_id", detail.TravelOptionID.String()),
		)
		return fmt.Errorf("upsert detail of travel option %s: %w", detail.TravelOptionID.String(), err)
	}

	return nil
}
