package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/shah-aaseesh/outsmash-connect-grow/internal/middleware"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/models"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/onboarding"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/services"
)

// stubOnboardingService returns canned wizard states.
type stubOnboardingService struct {
	state *models.WizardStateResponse
	err   error
}

func (s *stubOnboardingService) GetState(ctx context.Context, userID string) (*models.WizardStateResponse, error) {
	return s.state, s.err
}

func (s *stubOnboardingService) UpdateDraft(ctx context.Context, userID string, req *models.UpdateDraftRequest) (*models.WizardStateResponse, error) {
	return s.state, s.err
}

func (s *stubOnboardingService) Next(ctx context.Context, userID string) (*models.WizardStateResponse, error) {
	return s.state, s.err
}

func (s *stubOnboardingService) Previous(ctx context.Context, userID string) (*models.WizardStateResponse, error) {
	return s.state, s.err
}

func (s *stubOnboardingService) Wizard(ctx context.Context, userID string) (*onboarding.Wizard, error) {
	return nil, s.err
}

type stubPhotoService struct{}

func (s *stubPhotoService) UploadBatch(ctx context.Context, userID string, files []services.PhotoFile) (*models.PhotoUploadResponse, error) {
	return &models.PhotoUploadResponse{Success: true, Photos: []string{}}, nil
}

func (s *stubPhotoService) Remove(ctx context.Context, userID string, index int) ([]string, error) {
	return []string{}, nil
}

func onboardingRouter(svc services.OnboardingServiceInterface, withSession bool) *gin.Engine {
	handler := NewOnboardingHandler(svc, &stubPhotoService{})
	router := gin.New()
	if withSession {
		router.Use(func(c *gin.Context) {
			c.Set(middleware.SessionContextKey, &models.UserSession{UserID: "u1", Email: "jamie@example.com"})
		})
	}
	router.GET("/onboarding", handler.GetState)
	router.POST("/onboarding/next", handler.Next)
	router.PATCH("/onboarding/draft", handler.UpdateDraft)
	return router
}

func TestOnboardingHandler_GetStateRequiresSession(t *testing.T) {
	router := onboardingRouter(&stubOnboardingService{}, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/onboarding", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOnboardingHandler_NextReturns422OnFieldErrors(t *testing.T) {
	svc := &stubOnboardingService{state: &models.WizardStateResponse{
		Step:        0,
		TotalSteps:  onboarding.StepCount(),
		Status:      string(onboarding.StatusEditing),
		Draft:       models.NewProfileDraft(18),
		FieldErrors: map[string]string{"name": "Name must be at least 2 characters"},
	}}
	router := onboardingRouter(svc, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/onboarding/next", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Name must be at least 2 characters")
}

func TestOnboardingHandler_NextReturns200OnAdvance(t *testing.T) {
	svc := &stubOnboardingService{state: &models.WizardStateResponse{
		Step:       1,
		TotalSteps: onboarding.StepCount(),
		Status:     string(onboarding.StatusEditing),
		Draft:      models.NewProfileDraft(18),
	}}
	router := onboardingRouter(svc, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/onboarding/next", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOnboardingHandler_UpdateDraftRejectsBadJSON(t *testing.T) {
	router := onboardingRouter(&stubOnboardingService{}, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PATCH", "/onboarding/draft", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
