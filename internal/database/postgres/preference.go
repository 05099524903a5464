package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/shah-aaseesh/outsmash-connect-grow/internal/models"
	apperrors "github.com/shah-aaseesh/outsmash-connect-grow/pkg/errors"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/logger"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/metrics"
)

// UpsertPreferences writes a profile's discovery settings row.
func (c *Client) UpsertPreferences(ctx context.Context, prefs *models.Preferences) error {
	start := time.Now()
	operation := "upsertPreferences"

	query := `
		INSERT INTO preferences (profile_id, looking_for, age_min, age_max, distance)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (profile_id)
		DO UPDATE SET looking_for = EXCLUDED.looking_for,
		              age_min = EXCLUDED.age_min,
		              age_max = EXCLUDED.age_max,
		              distance = EXCLUDED.distance
	`

	_, err := c.pool.Exec(ctx, query,
		prefs.ProfileID, prefs.LookingFor, prefs.AgeMin, prefs.AgeMax, prefs.Distance)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to upsert preferences: %w", err)
	}

	recordMetrics(operation, "success", metrics.MeasureDuration(start))
	return nil
}

// GetPreferences fetches a profile's discovery settings.
func (c *Client) GetPreferences(ctx context.Context, profileID string) (*models.Preferences, error) {
	start := time.Now()
	operation := "getPreferences"

	query := `
		SELECT profile_id, looking_for, age_min, age_max, distance
		FROM preferences
		WHERE profile_id = $1
	`

	var prefs models.Preferences
	err := c.pool.QueryRow(ctx, query, profileID).Scan(
		&prefs.ProfileID, &prefs.LookingFor, &prefs.AgeMin, &prefs.AgeMax, &prefs.Distance)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics(operation, "not_found", duration)
			return nil, apperrors.NotFoundError("preferences not found")
		}
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	}

	recordMetrics(operation, "success", metrics.MeasureDuration(start))
	return &prefs, nil
}
