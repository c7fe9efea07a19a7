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

type ProfileRepository interface {
	Ensure(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)
	Upsert(ctx context.Context, profile *entity.Profile) error
}

type profileRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProfileRepository(db database.PgxIface, log *zap.Logger) ProfileRepository {
	return &profileRepository{
		db:  db,
		log: log.With(zap.String("repository", "profile")),
	}
}

const profileColumns = `id, user_id, phone_number, date_of_birth, street_address,
		       city, pin_code, country, created_at, updated_at`

// Ensure creates an empty profile for userID unless one exists, then returns
// the stored profile.
func (r *profileRepository) Ensure(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	query := `
		INSERT INTO user_profiles (id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (user_id) DO NOTHING
	`

	if _, err := r.db.Exec(ctx, query, uuid.New(), userID, time.Now()); err != nil {
		r.log.Error("Failed to ensure profile",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("ensure profile of user %s: %w", userID.String(), err)
	}

	profile, err := r.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("profile of user %s missing after ensure", userID.String())
	}
	return profile, nil
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM user_profiles WHERE user_id = $1`

	var p entity.Profile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID,
		&p.UserID,
		&p.PhoneNumber,
		&p.DateOfBirth,
		&p.StreetAddress,
		&p.City,
		&p.PinCode,
		&p.Country,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find profile",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find profile of user %s: %w", userID.String(), err)
	}

	return &p, nil
}

// Upsert writes every editable profile field keyed by the owner.
func (r *profileRepository) Upsert(ctx context.Context, profile *entity.Profile) error {
	query := `
		INSERT INTO user_profiles (id, user_id, phone_number, date_of_birth, street_address,
		                           city, pin_code, country, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		ON CONFLICT (user_id) DO UPDATE
		SET phone_number = EXCLUDED.phone_number,
		    date_of_birth = EXCLUDED.date_of_birth,
		    street_address = EXCLUDED.street_address,
		    city = EXCLUDED.city,
		    pin_code = EXCLUDED.pin_code,
		    country = EXCLUDED.country,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		profile.ID,
		profile.UserID,
		profile.PhoneNumber,
		profile.DateOfBirth,
		profile.StreetAddress,
		profile.City,
		profile.PinCode,
		profile.Country,
		profile.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to upsert profile",
			zap.Error(err),
			zap.String("user_id", profile.UserID.String()),
		)
		return fmt.Errorf("upsert profile of user %s: %w", profile.UserID.String(), err)
	}

	return nil
}
