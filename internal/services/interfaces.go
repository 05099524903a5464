package services

import (
	"context"

	"github.com/shah-aaseesh/outsmash-connect-grow/internal/models"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/onboarding"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/jwt"
)

// AuthServiceInterface defines the interface for account and session operations
type AuthServiceInterface interface {
	SignUp(ctx context.Context, req *models.SignUpRequest) (*models.UserSession, string, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.UserSession, string, error)
	IsProfileComplete(ctx context.Context, userID string) (bool, error)
	MarkProfileComplete(userID string)
	GetSessionTTL() int
	GetCookieDomain() string
	GetCookieSecure() bool
	GetTokenManager() *jwt.TokenManager
}

// OnboardingServiceInterface defines the interface for wizard operations
type OnboardingServiceInterface interface {
	GetState(ctx context.Context, userID string) (*models.WizardStateResponse, error)
	UpdateDraft(ctx context.Context, userID string, req *models.UpdateDraftRequest) (*models.WizardStateResponse, error)
	Next(ctx context.Context, userID string) (*models.WizardStateResponse, error)
	Previous(ctx context.Context, userID string) (*models.WizardStateResponse, error)
	Wizard(ctx context.Context, userID string) (*onboarding.Wizard, error)
}

// PhotoServiceInterface defines the interface for photo batch uploads
type PhotoServiceInterface interface {
	UploadBatch(ctx context.Context, userID string, files []PhotoFile) (*models.PhotoUploadResponse, error)
	Remove(ctx context.Context, userID string, index int) ([]string, error)
}

// SubmissionServiceInterface defines the interface for persisting a
// finished draft
type SubmissionServiceInterface interface {
	Submit(ctx context.Context, userID string, draft *models.ProfileDraft) (string, error)
}

// ProfileServiceInterface defines the interface for profile reads
type ProfileServiceInterface interface {
	GetPublicProfile(ctx context.Context, slug string) (*models.PublicProfileResponse, error)
	GetOwnProfile(ctx context.Context, userID string) (*models.PublicProfileResponse, error)
}

// InterestsServiceInterface defines the interface for the interests catalog
type InterestsServiceInterface interface {
	GetCatalog(ctx context.Context) ([]models.Interest, error)
}

// InterestCatalog checks tags against the selectable interest catalog.
type InterestCatalog interface {
	Contains(ctx context.Context, name string) (bool, error)
}

// ObjectStorage abstracts the photo object store.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(publicURL string) (string, bool)
}

// RecaptchaVerifier abstracts bot-protection token verification.
type RecaptchaVerifier interface {
	Verify(token string) (bool, error)
}
