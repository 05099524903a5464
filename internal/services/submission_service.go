package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shah-aaseesh/outsmash-connect-grow/config"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/models"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/repository"
	apperrors "github.com/shah-aaseesh/outsmash-connect-grow/pkg/errors"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/httpclient"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/logger"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/metrics"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/slug"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/trigger"
)

const slugAttempts = 5

// SubmissionService persists a finished draft. The profile row is
// written first; photo, preference and interest rows then go out in
// parallel. A failure part-way leaves the rows already written in
// place, and a retried submission upserts over them.
type SubmissionService struct {
	profiles    repository.ProfileDataSource
	photos      repository.PhotoDataSource
	preferences repository.PreferencesDataSource
	interests   repository.InterestsDataSource
	catalog     InterestCatalog
	httpClient  httpclient.Client
	config      *config.Config
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(
	profiles repository.ProfileDataSource,
	photos repository.PhotoDataSource,
	preferences repository.PreferencesDataSource,
	interests repository.InterestsDataSource,
	catalog InterestCatalog,
	httpClient httpclient.Client,
	cfg *config.Config,
) *SubmissionService {
	return &SubmissionService{
		profiles:    profiles,
		photos:      photos,
		preferences: preferences,
		interests:   interests,
		catalog:     catalog,
		httpClient:  httpClient,
		config:      cfg,
	}
}

// Submit writes the draft to the database and returns the profile's
// public slug.
func (s *SubmissionService) Submit(ctx context.Context, userID string, draft *models.ProfileDraft) (string, error) {
	start := time.Now()

	// Interest tags come from the fixed catalog; an unknown tag fails
	// the whole submission before the profile row is touched.
	for _, name := range draft.Interests {
		known, err := s.catalog.Contains(ctx, name)
		if err != nil {
			metrics.ProfileSubmissions.WithLabelValues("error").Inc()
			return "", fmt.Errorf("failed to check interest catalog: %w", err)
		}
		if !known {
			metrics.ProfileSubmissions.WithLabelValues("rejected").Inc()
			return "", apperrors.InvalidInputError(fmt.Sprintf("unknown interest %q", name))
		}
	}

	profileSlug, err := s.resolveSlug(ctx, userID, draft.Name)
	if err != nil {
		metrics.ProfileSubmissions.WithLabelValues("error").Inc()
		return "", err
	}

	if err := s.profiles.Complete(ctx, userID, profileSlug, draft); err != nil {
		metrics.ProfileSubmissions.WithLabelValues("error").Inc()
		return "", fmt.Errorf("failed to save profile: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	for i, url := range draft.Photos {
		g.Go(func() error {
			return s.photos.Upsert(gctx, userID, url, i)
		})
	}
	g.Go(func() error {
		return s.photos.DeleteFrom(gctx, userID, len(draft.Photos))
	})

	g.Go(func() error {
		return s.preferences.Upsert(gctx, &models.Preferences{
			ProfileID:  userID,
			LookingFor: draft.LookingFor,
			AgeMin:     draft.AgeRange.Min,
			AgeMax:     draft.AgeRange.Max,
			Distance:   draft.Distance,
		})
	})

	for _, name := range draft.Interests {
		g.Go(func() error {
			return s.interests.UpsertProfileInterest(gctx, userID, name)
		})
	}
	g.Go(func() error {
		return s.interests.ClearProfileInterestsExcept(gctx, userID, draft.Interests)
	})

	if err := g.Wait(); err != nil {
		metrics.ProfileSubmissions.WithLabelValues("error").Inc()
		logger.LogAPICall("submission", "submit", "error", metrics.MeasureDuration(start),
			zap.String("user_id", userID), zap.Error(err))
		return "", fmt.Errorf("failed to save profile details: %w", err)
	}

	metrics.ProfileSubmissions.WithLabelValues("success").Inc()
	logger.LogAPICall("submission", "submit", "success", metrics.MeasureDuration(start),
		zap.String("user_id", userID), zap.String("slug", profileSlug))

	if s.config.EventTriggers.ProfileCompletedTriggerURL != "" {
		trigger.CallAsync(s.config.EventTriggers.ProfileCompletedTriggerURL, userID, s.httpClient)
	}

	return profileSlug, nil
}

// resolveSlug keeps an existing slug across retried submissions and
// otherwise generates a fresh unique one from the user's name.
func (s *SubmissionService) resolveSlug(ctx context.Context, userID, name string) (string, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load profile: %w", err)
	}
	if profile.Slug != "" {
		return profile.Slug, nil
	}

	for i := 0; i < slugAttempts; i++ {
		candidate := slug.GenerateProfileSlug(name, uuid.NewString()[:4])
		exists, err := s.profiles.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not find a free slug after %d attempts", slugAttempts)
}

// Ensure SubmissionService implements SubmissionServiceInterface
var _ SubmissionServiceInterface = (*SubmissionService)(nil)
