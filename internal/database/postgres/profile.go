package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/shah-aaseesh/outsmash-connect-grow/internal/models"
	apperrors "github.com/shah-aaseesh/outsmash-connect-grow/pkg/errors"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/logger"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/metrics"
)

const uniqueViolation = "23505"

const profileColumns = `
	p.id, p.slug, p.email, p.name, p.birthdate, p.gender, p.location, p.bio,
	p.prompt1, p.prompt2, p.is_complete, p.created_at, p.updated_at,
	p.completed_at, p.password_hash
`

// CreateProfile inserts a new account row. The profile starts
// incomplete; onboarding fills in the rest.
func (c *Client) CreateProfile(ctx context.Context, email, passwordHash, name string) (*models.Profile, error) {
	start := time.Now()
	operation := "createProfile"

	query := `
		INSERT INTO profiles (email, password_hash, name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	profile := &models.Profile{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
	}
	err := c.pool.QueryRow(ctx, query, email, passwordHash, name).
		Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperrors.ConflictError("an account with this email already exists")
		}
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.String("profile_id", profile.ID))

	return profile, nil
}

// GetProfileByEmail fetches a profile including its password hash, for
// login verification only.
func (c *Client) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return c.getProfileByField(ctx, "getProfileByEmail", "p.email = $1", email)
}

// GetProfileByID fetches a profile by its primary key.
func (c *Client) GetProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	return c.getProfileByField(ctx, "getProfileByID", "p.id = $1", id)
}

// GetProfileBySlug fetches a completed profile by its public slug.
func (c *Client) GetProfileBySlug(ctx context.Context, slug string) (*models.Profile, error) {
	return c.getProfileByField(ctx, "getProfileBySlug", "p.slug = $1 AND p.is_complete", slug)
}

func (c *Client) getProfileByField(ctx context.Context, operation, whereClause string, arg interface{}) (*models.Profile, error) {
	start := time.Now()

	query := fmt.Sprintf(`SELECT %s FROM profiles p WHERE %s`, profileColumns, whereClause)

	var p models.Profile
	err := c.pool.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.Slug, &p.Email, &p.Name, &p.Birthdate, &p.Gender, &p.Location,
		&p.Bio, &p.Prompt1, &p.Prompt2, &p.IsComplete, &p.CreatedAt, &p.UpdatedAt,
		&p.CompletedAt, &p.PasswordHash,
	)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics(operation, "not_found", duration)
			return nil, apperrors.NotFoundError("profile not found")
		}
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)

	return &p, nil
}

// CompleteProfile writes the finished draft onto the profile row and
// marks it complete. This is the first write of a submission; photo,
// preference and interest writes follow it.
func (c *Client) CompleteProfile(ctx context.Context, profileID, slug string, draft *models.ProfileDraft) error {
	start := time.Now()
	operation := "completeProfile"

	query := `
		UPDATE profiles
		SET slug = $2,
		    name = $3,
		    birthdate = $4,
		    gender = $5,
		    location = $6,
		    bio = $7,
		    prompt1 = $8,
		    prompt2 = $9,
		    is_complete = TRUE,
		    completed_at = COALESCE(completed_at, NOW()),
		    updated_at = NOW()
		WHERE id = $1
	`

	tag, err := c.pool.Exec(ctx, query, profileID, slug,
		draft.Name, draft.Birthdate, draft.Gender, draft.Location, draft.Bio,
		draft.Prompt1, draft.Prompt2)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to complete profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "not_found", duration)
		return apperrors.NotFoundError("profile not found")
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.String("profile_id", profileID))

	return nil
}

// IsProfileComplete reports whether the given profile has finished
// onboarding.
func (c *Client) IsProfileComplete(ctx context.Context, profileID string) (bool, error) {
	start := time.Now()
	operation := "isProfileComplete"

	var complete bool
	err := c.pool.QueryRow(ctx,
		`SELECT is_complete FROM profiles WHERE id = $1`, profileID).Scan(&complete)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics(operation, "not_found", duration)
			return false, apperrors.NotFoundError("profile not found")
		}
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return false, fmt.Errorf("failed to query profile completion: %w", err)
	}

	recordMetrics(operation, "success", metrics.MeasureDuration(start))
	return complete, nil
}

// SlugExists reports whether a profile already uses the given slug.
func (c *Client) SlugExists(ctx context.Context, slug string) (bool, error) {
	start := time.Now()
	operation := "slugExists"

	var exists bool
	err := c.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM profiles WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return false, fmt.Errorf("failed to check slug: %w", err)
	}

	recordMetrics(operation, "success", metrics.MeasureDuration(start))
	return exists, nil
}
