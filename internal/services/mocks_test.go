package services_test

import (
	"context"
	"io"
	"net/http"

	"github.com/stretchr/testify/mock"

	"github.com/shah-aaseesh/outsmash-connect-grow/internal/models"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/onboarding"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/jwt"
)

// MockProfileDataSource is a mock implementation of repository.ProfileDataSource
type MockProfileDataSource struct {
	mock.Mock
}

func (m *MockProfileDataSource) Create(ctx context.Context, email, passwordHash, name string) (*models.Profile, error) {
	args := m.Called(ctx, email, passwordHash, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileDataSource) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileDataSource) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileDataSource) GetBySlug(ctx context.Context, slug string) (*models.Profile, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileDataSource) Complete(ctx context.Context, profileID, slug string, draft *models.ProfileDraft) error {
	args := m.Called(ctx, profileID, slug, draft)
	return args.Error(0)
}

func (m *MockProfileDataSource) IsComplete(ctx context.Context, profileID string) (bool, error) {
	args := m.Called(ctx, profileID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProfileDataSource) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

// MockPhotoDataSource is a mock implementation of repository.PhotoDataSource
type MockPhotoDataSource struct {
	mock.Mock
}

func (m *MockPhotoDataSource) Upsert(ctx context.Context, profileID, url string, position int) error {
	args := m.Called(ctx, profileID, url, position)
	return args.Error(0)
}

func (m *MockPhotoDataSource) DeleteFrom(ctx context.Context, profileID string, position int) error {
	args := m.Called(ctx, profileID, position)
	return args.Error(0)
}

func (m *MockPhotoDataSource) GetByProfileID(ctx context.Context, profileID string) ([]*models.Photo, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Photo), args.Error(1)
}

// MockPreferencesDataSource is a mock implementation of repository.PreferencesDataSource
type MockPreferencesDataSource struct {
	mock.Mock
}

func (m *MockPreferencesDataSource) Upsert(ctx context.Context, prefs *models.Preferences) error {
	args := m.Called(ctx, prefs)
	return args.Error(0)
}

func (m *MockPreferencesDataSource) Get(ctx context.Context, profileID string) (*models.Preferences, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Preferences), args.Error(1)
}

// MockInterestsDataSource is a mock implementation of repository.InterestsDataSource
type MockInterestsDataSource struct {
	mock.Mock
}

func (m *MockInterestsDataSource) GetAll(ctx context.Context) ([]models.Interest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Interest), args.Error(1)
}

func (m *MockInterestsDataSource) UpsertProfileInterest(ctx context.Context, profileID, interestName string) error {
	args := m.Called(ctx, profileID, interestName)
	return args.Error(0)
}

func (m *MockInterestsDataSource) ClearProfileInterestsExcept(ctx context.Context, profileID string, keep []string) error {
	args := m.Called(ctx, profileID, keep)
	return args.Error(0)
}

func (m *MockInterestsDataSource) GetNamesByProfileID(ctx context.Context, profileID string) ([]string, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockInterestCatalog is a mock implementation of services.InterestCatalog
type MockInterestCatalog struct {
	mock.Mock
}

func (m *MockInterestCatalog) Contains(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// MockObjectStorage is a mock implementation of services.ObjectStorage
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockObjectStorage) KeyFromURL(publicURL string) (string, bool) {
	args := m.Called(publicURL)
	return args.String(0), args.Bool(1)
}

// MockRecaptchaVerifier is a mock implementation of services.RecaptchaVerifier
type MockRecaptchaVerifier struct {
	mock.Mock
}

func (m *MockRecaptchaVerifier) Verify(token string) (bool, error) {
	args := m.Called(token)
	return args.Bool(0), args.Error(1)
}

// MockSubmissionService is a mock implementation of services.SubmissionServiceInterface
type MockSubmissionService struct {
	mock.Mock
}

func (m *MockSubmissionService) Submit(ctx context.Context, userID string, draft *models.ProfileDraft) (string, error) {
	args := m.Called(ctx, userID, draft)
	return args.String(0), args.Error(1)
}

// MockOnboardingService is a mock implementation of services.OnboardingServiceInterface
type MockOnboardingService struct {
	mock.Mock
}

func (m *MockOnboardingService) GetState(ctx context.Context, userID string) (*models.WizardStateResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WizardStateResponse), args.Error(1)
}

func (m *MockOnboardingService) UpdateDraft(ctx context.Context, userID string, req *models.UpdateDraftRequest) (*models.WizardStateResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WizardStateResponse), args.Error(1)
}

func (m *MockOnboardingService) Next(ctx context.Context, userID string) (*models.WizardStateResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WizardStateResponse), args.Error(1)
}

func (m *MockOnboardingService) Previous(ctx context.Context, userID string) (*models.WizardStateResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WizardStateResponse), args.Error(1)
}

func (m *MockOnboardingService) Wizard(ctx context.Context, userID string) (*onboarding.Wizard, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*onboarding.Wizard), args.Error(1)
}

// MockAuthService is a mock implementation of services.AuthServiceInterface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignUp(ctx context.Context, req *models.SignUpRequest) (*models.UserSession, string, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.UserSession), args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.UserSession, string, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.UserSession), args.String(1), args.Error(2)
}

func (m *MockAuthService) IsProfileComplete(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthService) MarkProfileComplete(userID string) {
	m.Called(userID)
}

func (m *MockAuthService) GetSessionTTL() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockAuthService) GetCookieDomain() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockAuthService) GetCookieSecure() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockAuthService) GetTokenManager() *jwt.TokenManager {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*jwt.TokenManager)
}

// MockHTTPClient is a mock implementation of httpclient.Client
type MockHTTPClient struct {
	mock.Mock
}

func (m *MockHTTPClient) Post(url, contentType string, body io.Reader) (*http.Response, error) {
	args := m.Called(url, contentType, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func (m *MockHTTPClient) Get(url string) (*http.Response, error) {
	args := m.Called(url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}
