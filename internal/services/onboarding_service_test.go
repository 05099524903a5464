package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/shah-aaseesh/outsmash-connect-grow/config"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/cache"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/models"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/onboarding"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/services"
	apperrors "github.com/shah-aaseesh/outsmash-connect-grow/pkg/errors"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			AppEnv:  "development",
			BaseURL: "https://outsmash.test",
		},
		Onboarding: config.OnboardingConfig{
			MaxPhotos:        6,
			MaxPhotoSizeMB:   5,
			DraftTTLMinutes:  120,
			MinAge:           18,
			CompletedTTLSecs: 300,
		},
	}
}

func newOnboardingFixture(t *testing.T) (*services.OnboardingService, *MockSubmissionService, *MockAuthService) {
	t.Helper()
	cfg := testConfig()
	submission := new(MockSubmissionService)
	auth := new(MockAuthService)
	svc := services.NewOnboardingService(
		cache.NewDraftStore(2*time.Hour),
		onboarding.NewSchema(onboarding.SchemaConfig{
			MaxPhotos: cfg.Onboarding.MaxPhotos,
			MinAge:    cfg.Onboarding.MinAge,
		}),
		submission,
		auth,
		cfg,
	)
	return svc, submission, auth
}

// fillDraft pushes a complete, valid draft into the user's wizard.
func fillDraft(t *testing.T, svc *services.OnboardingService, userID string) {
	t.Helper()
	ctx := context.Background()
	birth := time.Date(1995, time.March, 10, 0, 0, 0, 0, time.UTC)
	name := "Jamie Lee"
	gender := models.GenderWoman
	location := "Austin, TX"
	interests := []string{"hiking", "music"}
	lookingFor := []string{"friendship"}
	bio := "I like long walks and longer coffees."

	_, err := svc.UpdateDraft(ctx, userID, &models.UpdateDraftRequest{
		Name:       &name,
		Birthdate:  &birth,
		Gender:     &gender,
		Location:   &location,
		Interests:  &interests,
		LookingFor: &lookingFor,
		Bio:        &bio,
	})
	assert.NoError(t, err)

	w, err := svc.Wizard(ctx, userID)
	assert.NoError(t, err)
	_, err = w.AppendPhotos([]string{"https://cdn.outsmash.test/photos/u1/a.jpg"})
	assert.NoError(t, err)
}

func TestOnboardingService_GetStateCreatesDraftWithDefaults(t *testing.T) {
	svc, _, auth := newOnboardingFixture(t)
	ctx := context.Background()
	auth.On("IsProfileComplete", ctx, "u1").Return(false, nil)

	state, err := svc.GetState(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, 0, state.Step)
	assert.Equal(t, onboarding.StepCount(), state.TotalSteps)
	assert.Equal(t, string(onboarding.StatusEditing), state.Status)
	assert.Equal(t, models.AgeRange{Min: 18, Max: 50}, state.Draft.AgeRange)
	assert.Equal(t, 25, state.Draft.Distance)
	assert.Empty(t, state.Draft.Photos)
}

func TestOnboardingService_CompletedUsersCannotReenter(t *testing.T) {
	svc, _, auth := newOnboardingFixture(t)
	ctx := context.Background()
	auth.On("IsProfileComplete", ctx, "u1").Return(true, nil)

	_, err := svc.GetState(ctx, "u1")
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestOnboardingService_NextReturnsFieldErrorsAndStays(t *testing.T) {
	svc, _, auth := newOnboardingFixture(t)
	ctx := context.Background()
	auth.On("IsProfileComplete", ctx, "u1").Return(false, nil)

	state, err := svc.Next(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, 0, state.Step)
	assert.Contains(t, state.FieldErrors, "name")
}

func TestOnboardingService_FullWalkthroughSubmitsAndCompletes(t *testing.T) {
	svc, submission, auth := newOnboardingFixture(t)
	ctx := context.Background()
	auth.On("IsProfileComplete", ctx, "u1").Return(false, nil)
	auth.On("MarkProfileComplete", "u1").Return().Once()
	submission.On("Submit", ctx, "u1", mock.AnythingOfType("*models.ProfileDraft")).
		Return("jamie-lee-4f2a", nil).Once()

	fillDraft(t, svc, "u1")

	var state *models.WizardStateResponse
	var err error
	for i := 0; i < onboarding.StepCount(); i++ {
		state, err = svc.Next(ctx, "u1")
		assert.NoError(t, err)
		assert.Empty(t, state.FieldErrors)
	}

	assert.Equal(t, string(onboarding.StatusCompleted), state.Status)
	assert.Equal(t, "jamie-lee-4f2a", state.ProfileSlug)
	submission.AssertExpectations(t)
	auth.AssertExpectations(t)
}

func TestOnboardingService_FailedSubmissionKeepsDraftForRetry(t *testing.T) {
	svc, submission, auth := newOnboardingFixture(t)
	ctx := context.Background()
	auth.On("IsProfileComplete", ctx, "u1").Return(false, nil)
	auth.On("MarkProfileComplete", "u1").Return().Once()
	submission.On("Submit", ctx, "u1", mock.AnythingOfType("*models.ProfileDraft")).
		Return("", errors.New("database unavailable")).Once()
	submission.On("Submit", ctx, "u1", mock.AnythingOfType("*models.ProfileDraft")).
		Return("jamie-lee-4f2a", nil).Once()

	fillDraft(t, svc, "u1")

	var state *models.WizardStateResponse
	var err error
	for i := 0; i < onboarding.StepCount(); i++ {
		state, err = svc.Next(ctx, "u1")
		assert.NoError(t, err)
	}

	assert.Equal(t, string(onboarding.StatusSubmissionFailed), state.Status)
	assert.Equal(t, "database unavailable", state.SubmissionError)
	assert.Equal(t, "Jamie Lee", state.Draft.Name)

	// Retrying from the failed state resubmits the same draft.
	state, err = svc.Next(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, string(onboarding.StatusCompleted), state.Status)
	submission.AssertExpectations(t)
}

func TestOnboardingService_PreviousStepsBackWithoutValidation(t *testing.T) {
	svc, _, auth := newOnboardingFixture(t)
	ctx := context.Background()
	auth.On("IsProfileComplete", ctx, "u1").Return(false, nil)

	name := "Jamie Lee"
	_, err := svc.UpdateDraft(ctx, "u1", &models.UpdateDraftRequest{Name: &name})
	assert.NoError(t, err)

	state, err := svc.Next(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, 1, state.Step)

	// The birthdate step is empty and invalid, but Previous works.
	state, err = svc.Previous(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, 0, state.Step)

	_, err = svc.Previous(ctx, "u1")
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}
