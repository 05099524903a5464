package services

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/shah-aaseesh/outsmash-connect-grow/config"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/cache"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/models"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/onboarding"
	apperrors "github.com/shah-aaseesh/outsmash-connect-grow/pkg/errors"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/logger"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/metrics"
)

// OnboardingService orchestrates per-user wizards: it owns the draft
// store, runs transitions and hands the finished draft to the
// submission service on the final step.
type OnboardingService struct {
	drafts     *cache.DraftStore
	schema     *onboarding.Schema
	submission SubmissionServiceInterface
	auth       AuthServiceInterface
	config     *config.Config
}

// NewOnboardingService creates a new onboarding service
func NewOnboardingService(
	drafts *cache.DraftStore,
	schema *onboarding.Schema,
	submission SubmissionServiceInterface,
	auth AuthServiceInterface,
	cfg *config.Config,
) *OnboardingService {
	return &OnboardingService{
		drafts:     drafts,
		schema:     schema,
		submission: submission,
		auth:       auth,
		config:     cfg,
	}
}

// Wizard returns the user's wizard, creating a fresh one on first use.
func (s *OnboardingService) Wizard(ctx context.Context, userID string) (*onboarding.Wizard, error) {
	complete, err := s.auth.IsProfileComplete(ctx, userID)
	if err != nil {
		return nil, err
	}
	if complete {
		return nil, apperrors.ConflictError("profile already completed")
	}

	w := s.drafts.GetOrCreate(userID, func() *onboarding.Wizard {
		return onboarding.NewWizard(s.schema,
			models.NewProfileDraft(s.config.Onboarding.MinAge))
	})
	return w, nil
}

// GetState returns the current wizard state without transitioning.
func (s *OnboardingService) GetState(ctx context.Context, userID string) (*models.WizardStateResponse, error) {
	w, err := s.Wizard(ctx, userID)
	if err != nil {
		return nil, err
	}
	return stateResponse(w.Snapshot(), nil), nil
}

// UpdateDraft merges a partial edit into the user's draft.
func (s *OnboardingService) UpdateDraft(ctx context.Context, userID string, req *models.UpdateDraftRequest) (*models.WizardStateResponse, error) {
	w, err := s.Wizard(ctx, userID)
	if err != nil {
		return nil, err
	}
	view, err := w.ApplyEdits(req)
	if err != nil {
		return nil, mapWizardErr(err)
	}
	return stateResponse(view, nil), nil
}

// Next validates the current step and advances. On the last step a
// successful validation submits the whole draft synchronously; the
// wizard is completed or marked failed before this returns.
func (s *OnboardingService) Next(ctx context.Context, userID string) (*models.WizardStateResponse, error) {
	w, err := s.Wizard(ctx, userID)
	if err != nil {
		return nil, err
	}

	before := w.Snapshot().Step
	view, fieldErrs, readyToSubmit, err := w.Next()
	if err != nil {
		return nil, mapWizardErr(err)
	}
	if len(fieldErrs) > 0 {
		metrics.OnboardingStepRejections.WithLabelValues(strconv.Itoa(before)).Inc()
		return stateResponse(view, fieldErrs), nil
	}
	metrics.OnboardingStepAdvances.WithLabelValues(strconv.Itoa(before)).Inc()

	if !readyToSubmit {
		return stateResponse(view, nil), nil
	}

	slug, submitErr := s.submission.Submit(ctx, userID, &view.Draft)
	view = w.FinishSubmit(slug, submitErr)
	if submitErr != nil {
		logger.Error("Profile submission failed",
			zap.String("user_id", userID), zap.Error(submitErr))
		return stateResponse(view, nil), nil
	}

	s.auth.MarkProfileComplete(userID)
	s.drafts.Delete(userID)
	logger.Info("Onboarding completed",
		zap.String("user_id", userID), zap.String("slug", slug))

	return stateResponse(view, nil), nil
}

// Previous steps back without validating.
func (s *OnboardingService) Previous(ctx context.Context, userID string) (*models.WizardStateResponse, error) {
	w, err := s.Wizard(ctx, userID)
	if err != nil {
		return nil, err
	}
	view, err := w.Previous()
	if err != nil {
		return nil, mapWizardErr(err)
	}
	return stateResponse(view, nil), nil
}

func stateResponse(view onboarding.View, fieldErrs map[string]string) *models.WizardStateResponse {
	draft := view.Draft
	return &models.WizardStateResponse{
		Step:            view.Step,
		TotalSteps:      onboarding.StepCount(),
		Steps:           onboarding.StepInfos(),
		Status:          string(view.Status),
		Draft:           &draft,
		FieldErrors:     fieldErrs,
		SubmissionError: view.SubmissionError,
		ProfileSlug:     view.ProfileSlug,
	}
}

func mapWizardErr(err error) error {
	switch err {
	case onboarding.ErrSubmissionInFlight:
		return apperrors.ConflictError("submission already in progress")
	case onboarding.ErrAlreadyCompleted:
		return apperrors.ConflictError("onboarding already completed")
	case onboarding.ErrAtFirstStep:
		return apperrors.InvalidInputError("already at the first step")
	case onboarding.ErrPhotoIndexOutOfRange:
		return apperrors.InvalidInputError("photo index out of range")
	case onboarding.ErrPhotoLimitExceeded:
		return apperrors.InvalidInputError("photo limit exceeded")
	}
	return err
}

// Ensure OnboardingService implements OnboardingServiceInterface
var _ OnboardingServiceInterface = (*OnboardingService)(nil)
