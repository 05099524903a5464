package postgres

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shah-aaseesh/outsmash-connect-grow/internal/models"
	apperrors "github.com/shah-aaseesh/outsmash-connect-grow/pkg/errors"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/logger"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/metrics"
)

// GetAllInterests returns the selectable interests catalog in display
// order.
func (c *Client) GetAllInterests(ctx context.Context) ([]models.Interest, error) {
	start := time.Now()
	operation := "getAllInterests"

	query := `SELECT id, name, emoji FROM interests ORDER BY sort_order ASC, name ASC`

	rows, err := c.pool.Query(ctx, query)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query interests: %w", err)
	}
	defer rows.Close()

	interests := make([]models.Interest, 0)
	for rows.Next() {
		var i models.Interest
		if err := rows.Scan(&i.ID, &i.Name, &i.Emoji); err != nil {
			duration := metrics.MeasureDuration(start)
			recordMetrics(operation, "error", duration)
			logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
			return nil, fmt.Errorf("failed to scan interest row: %w", err)
		}
		interests = append(interests, i)
	}
	if err := rows.Err(); err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("error iterating interest rows: %w", err)
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int("count", len(interests)))

	return interests, nil
}

// UpsertProfileInterest links a profile to a catalog interest by name.
// Unknown interest names are rejected.
func (c *Client) UpsertProfileInterest(ctx context.Context, profileID, interestName string) error {
	start := time.Now()
	operation := "upsertProfileInterest"

	query := `
		INSERT INTO profile_interests (profile_id, interest_id)
		SELECT $1, id FROM interests WHERE name = $2
		ON CONFLICT (profile_id, interest_id) DO NOTHING
	`

	tag, err := c.pool.Exec(ctx, query, profileID, interestName)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration,
			zap.Error(err), zap.String("interest", interestName))
		return fmt.Errorf("failed to upsert profile interest %q: %w", interestName, err)
	}
	if tag.RowsAffected() == 0 {
		// Either the name is unknown or the link already exists.
		// Only the former is an error worth surfacing.
		var exists bool
		if err := c.pool.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM interests WHERE name = $1)`, interestName).Scan(&exists); err == nil && !exists {
			recordMetrics(operation, "not_found", metrics.MeasureDuration(start))
			return apperrors.InvalidInputError(fmt.Sprintf("unknown interest %q", interestName))
		}
	}

	recordMetrics(operation, "success", metrics.MeasureDuration(start))
	return nil
}

// ClearProfileInterestsExcept removes interest links that are not in
// the given set, so a resubmission replaces the previous selection.
func (c *Client) ClearProfileInterestsExcept(ctx context.Context, profileID string, keep []string) error {
	start := time.Now()
	operation := "clearProfileInterests"

	query := `
		DELETE FROM profile_interests pi
		USING interests i
		WHERE pi.interest_id = i.id
		  AND pi.profile_id = $1
		  AND NOT (i.name = ANY($2))
	`

	if _, err := c.pool.Exec(ctx, query, profileID, keep); err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to clear profile interests: %w", err)
	}

	recordMetrics(operation, "success", metrics.MeasureDuration(start))
	return nil
}

// GetInterestNamesByProfileID returns the interest names linked to a
// profile.
func (c *Client) GetInterestNamesByProfileID(ctx context.Context, profileID string) ([]string, error) {
	start := time.Now()
	operation := "getInterestNamesByProfileID"

	query := `
		SELECT i.name
		FROM profile_interests pi
		JOIN interests i ON i.id = pi.interest_id
		WHERE pi.profile_id = $1
		ORDER BY i.name ASC
	`

	rows, err := c.pool.Query(ctx, query, profileID)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query profile interests: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			duration := metrics.MeasureDuration(start)
			recordMetrics(operation, "error", duration)
			return nil, fmt.Errorf("failed to scan interest name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		return nil, fmt.Errorf("error iterating interest names: %w", err)
	}

	recordMetrics(operation, "success", metrics.MeasureDuration(start))
	return names, nil
}
