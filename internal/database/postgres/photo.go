package postgres

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shah-aaseesh/outsmash-connect-grow/internal/models"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/logger"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/metrics"
)

// UpsertPhoto writes one photo slot for a profile. Slot 0 is the
// primary photo. Safe to call concurrently for different positions.
func (c *Client) UpsertPhoto(ctx context.Context, profileID, url string, position int) error {
	start := time.Now()
	operation := "upsertPhoto"

	query := `
		INSERT INTO photos (profile_id, url, position, is_primary)
		VALUES ($1, $2, $3, $3 = 0)
		ON CONFLICT (profile_id, position)
		DO UPDATE SET url = EXCLUDED.url, is_primary = EXCLUDED.is_primary
	`

	if _, err := c.pool.Exec(ctx, query, profileID, url, position); err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration,
			zap.Error(err), zap.Int("position", position))
		return fmt.Errorf("failed to upsert photo at position %d: %w", position, err)
	}

	recordMetrics(operation, "success", metrics.MeasureDuration(start))
	return nil
}

// DeletePhotosFrom removes photo slots at or beyond the given
// position, clearing stale rows after a resubmission with fewer
// photos.
func (c *Client) DeletePhotosFrom(ctx context.Context, profileID string, position int) error {
	start := time.Now()
	operation := "deletePhotosFrom"

	query := `DELETE FROM photos WHERE profile_id = $1 AND position >= $2`
	if _, err := c.pool.Exec(ctx, query, profileID, position); err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to delete photos: %w", err)
	}

	recordMetrics(operation, "success", metrics.MeasureDuration(start))
	return nil
}

// GetPhotosByProfileID returns a profile's photos ordered by slot.
func (c *Client) GetPhotosByProfileID(ctx context.Context, profileID string) ([]*models.Photo, error) {
	start := time.Now()
	operation := "getPhotosByProfileID"

	query := `
		SELECT id, profile_id, url, position, is_primary, created_at
		FROM photos
		WHERE profile_id = $1
		ORDER BY position ASC
	`

	rows, err := c.pool.Query(ctx, query, profileID)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query photos: %w", err)
	}
	defer rows.Close()

	photos := make([]*models.Photo, 0)
	for rows.Next() {
		var p models.Photo
		if err := rows.Scan(&p.ID, &p.ProfileID, &p.URL, &p.Position, &p.IsPrimary, &p.CreatedAt); err != nil {
			duration := metrics.MeasureDuration(start)
			recordMetrics(operation, "error", duration)
			logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
			return nil, fmt.Errorf("failed to scan photo row: %w", err)
		}
		photos = append(photos, &p)
	}
	if err := rows.Err(); err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("error iterating photo rows: %w", err)
	}

	recordMetrics(operation, "success", metrics.MeasureDuration(start))
	return photos, nil
}
