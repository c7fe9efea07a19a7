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

// TravelImageRepository keeps exactly one primary image per travel option
// that has images. Every write locks the parent travel option row first, so
// concurrent writes for the same option are serialized.
type TravelImageRepository interface {
	Save(ctx context.Context, image *entity.TravelImage) error
	Delete(ctx context.Context, travelOptionID, imageID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TravelImage, error)
	FindByTravelOption(ctx context.Context, travelOptionID uuid.UUID) ([]*entity.TravelImage, error)
}

type travelImageRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTravelImageRepository(db database.PgxIface, log *zap.Logger) TravelImageRepository {
	return &travelImageRepository{
		db:  db,
		log: log.With(zap.String("repository", "travel_image")),
	}
}

// Save inserts image when its ID is zero and updates it otherwise.
// A first image saved without the primary flag is promoted to primary; a
// primary image clears the flag on every sibling.
func (r *travelImageRepository) Save(ctx context.Context, image *entity.TravelImage) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := lockTravelOption(ctx, tx, image.TravelOptionID); err != nil {
			return err
		}

		isNew := image.ID == uuid.Nil
		if isNew {
			image.ID = uuid.New()
			image.CreatedAt = time.Now()

			if !image.IsPrimary {
				var count int
				err := tx.QueryRow(ctx,
					`SELECT COUNT(*) FROM travel_option_images WHERE travel_option_id = $1`,
					image.TravelOptionID,
				).Scan(&count)
				if err != nil {
					return fmt.Errorf("count images: %w", err)
				}
				image.IsPrimary = count == 0
			}
		}

		if image.IsPrimary {
			_, err := tx.Exec(ctx, `
				UPDATE travel_option_images SET is_primary = FALSE
				WHERE travel_option_id = $1 AND id <> $2 AND is_primary`,
				image.TravelOptionID, image.ID,
			)
			if err != nil {
				return fmt.Errorf("clear other primary images: %w", err)
			}
		}

		if isNew {
			_, err := tx.Exec(ctx, `
				INSERT INTO travel_option_images (id, travel_option_id, image_url, image_title,
				                                  is_primary, display_order, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				image.ID,
				image.TravelOptionID,
				image.ImageURL,
				image.ImageTitle,
				image.IsPrimary,
				image.DisplayOrder,
				image.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("insert image: %w", err)
			}
			return nil
		}

		result, err := tx.Exec(ctx, `
			UPDATE travel_option_images
			SET image_url = $3, image_title = $4, is_primary = $5, display_order = $6
			WHERE id = $1 AND travel_option_id = $2`,
			image.ID,
			image.TravelOptionID,
			image.ImageURL,
			image.ImageTitle,
			image.IsPrimary,
			image.DisplayOrder,
		)
		if err != nil {
			return fmt.Errorf("update image: %w", err)
		}
		if result.RowsAffected() == 0 {
			return fmt.Errorf("image %s: %w", image.ID.String(), ErrNotFound)
		}

		if !image.IsPrimary {
			promoted, err := ensurePrimaryImage(ctx, tx, image.TravelOptionID)
			if err != nil {
				return err
			}
			image.IsPrimary = promoted == image.ID
		}
		return nil
	})

	if err != nil && !errors.Is(err, ErrNotFound) {
		r.log.Error("Failed to save image",
			zap.Error(err),
			zap.String("travel_option_id", image.TravelOptionID.String()),
		)
	}
	if err != nil {
		return fmt.Errorf("save image for travel option %s: %w", image.TravelOptionID.String(), err)
	}

	return nil
}

// Delete removes an image and promotes a sibling when the primary went away.
func (r *travelImageRepository) Delete(ctx context.Context, travelOptionID, imageID uuid.UUID) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := lockTravelOption(ctx, tx, travelOptionID); err != nil {
			return err
		}

		result, err := tx.Exec(ctx,
			`DELETE FROM travel_option_images WHERE id = $1 AND travel_option_id = $2`,
			imageID, travelOptionID,
		)
		if err != nil {
			return fmt.Errorf("delete image: %w", err)
		}
		if result.RowsAffected() == 0 {
			return fmt.Errorf("image %s: %w", imageID.String(), ErrNotFound)
		}

		_, err = ensurePrimaryImage(ctx, tx, travelOptionID)
		return err
	})

	if err != nil && !errors.Is(err, ErrNotFound) {
		r.log.Error("Failed to delete image",
			zap.Error(err),
			zap.String("image_id", imageID.String()),
		)
	}
	if err != nil {
		return fmt.Errorf("delete image %s: %w", imageID.String(), err)
	}

	return nil
}

func (r *travelImageRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TravelImage, error) {
	query := `
		SELECT id, travel_option_id, image_url, image_title, is_primary, display_order, created_at
		FROM travel_option_images
		WHERE id = $1
	`

	var img entity.TravelImage
	err := r.db.QueryRow(ctx, query, id).Scan(
		&img.ID,
		&img.TravelOptionID,
		&img.ImageURL,
		&img.ImageTitle,
		&img.IsPrimary,
		&img.DisplayOrder,
		&img.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find image", zap.Error(err), zap.String("image_id", id.String()))
		return nil, fmt.Errorf("find image %s: %w", id.String(), err)
	}

	return &img, nil
}

// FindByTravelOption returns the images in display order.
func (r *travelImageRepository) FindByTravelOption(ctx context.Context, travelOptionID uuid.UUID) ([]*entity.TravelImage, error) {
	query := `
		SELECT id, travel_option_id, image_url, image_title, is_primary, display_order, created_at
		FROM travel_option_images
		WHERE travel_option_id = $1
		ORDER BY display_order, created_at
	`

	rows, err := r.db.Query(ctx, query, travelOptionID)
	if err != nil {
		r.log.Error("Failed to list images",
			zap.Error(err),
			zap.String("travel_option_id", travelOptionID.String()),
		)
		return nil, fmt.Errorf("find images of travel option %s: %w", travelOptionID.String(), err)
	}
	defer rows.Close()

	var images []*entity.TravelImage
	for rows.Next() {
		var img entity.TravelImage
		err := rows.Scan(
			&img.ID,
			&img.TravelOptionID,
			&img.ImageURL,
			&img.ImageTitle,
			&img.IsPrimary,
			&img.DisplayOrder,
			&img.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan image row", zap.Error(err))
			return nil, fmt.Errorf("scan image row: %w", err)
		}
		images = append(images, &img)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate image rows: %w", err)
	}

	return images, nil
}

func lockTravelOption(ctx context.Context, q querier, id uuid.UUID) error {
	var locked uuid.UUID
	err := q.QueryRow(ctx, `SELECT id FROM travel_options WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("travel option %s: %w", id.String(), ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("lock travel option %s: %w", id.String(), err)
	}
	return nil
}

// ensurePrimaryImage promotes the first image in display order when a travel
// option has images but no primary. It returns the promoted image ID, or
// uuid.Nil when nothing changed.
func ensurePrimaryImage(ctx context.Context, q querier, travelOptionID uuid.UUID) (uuid.UUID, error) {
	var promoted uuid.UUID
	err := q.QueryRow(ctx, `
		UPDATE travel_option_images SET is_primary = TRUE
		WHERE id = (
			SELECT id FROM travel_option_images
			WHERE travel_option_id = $1
			ORDER BY display_order, created_at
			LIMIT 1
		)
		AND NOT EXISTS (
			SELECT 1 FROM travel_option_images WHERE travel_option_id = $1 AND is_primary
		)
		RETURNING id`,
		travelOptionID,
	).Scan(&promoted)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, nil
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("promote primary image: %w", err)
	}
	return promoted, nil
}
