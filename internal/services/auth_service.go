package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/shah-aaseesh/outsmash-connect-grow/config"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/cache"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/models"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/repository"
	apperrors "github.com/shah-aaseesh/outsmash-connect-grow/pkg/errors"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/jwt"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/logger"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/metrics"
)

// AuthService handles signup, login and session introspection.
type AuthService struct {
	profiles     repository.ProfileDataSource
	tokenManager *jwt.TokenManager
	recaptcha    RecaptchaVerifier
	completion   *cache.CompletionCache
	config       *config.Config
}

// NewAuthService creates a new auth service. recaptcha may be nil when
// bot protection is not configured.
func NewAuthService(
	profiles repository.ProfileDataSource,
	tokenManager *jwt.TokenManager,
	recaptcha RecaptchaVerifier,
	completion *cache.CompletionCache,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		profiles:     profiles,
		tokenManager: tokenManager,
		recaptcha:    recaptcha,
		completion:   completion,
		config:       cfg,
	}
}

// SignUp creates an account and returns the session plus a signed
// session token.
func (s *AuthService) SignUp(ctx context.Context, req *models.SignUpRequest) (*models.UserSession, string, error) {
	if s.recaptcha != nil {
		ok, err := s.recaptcha.Verify(req.RecaptchaToken)
		if err != nil {
			logger.Error("reCAPTCHA verification failed", zap.Error(err))
			return nil, "", apperrors.InternalError("could not verify request")
		}
		if !ok {
			metrics.Signups.WithLabelValues("rejected").Inc()
			return nil, "", apperrors.InvalidInputError("reCAPTCHA verification failed")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	profile, err := s.profiles.Create(ctx, email, string(hash), strings.TrimSpace(req.Name))
	if err != nil {
		metrics.Signups.WithLabelValues("error").Inc()
		return nil, "", err
	}

	token, err := s.tokenManager.GenerateToken(profile.ID, profile.Email, profile.Name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	metrics.Signups.WithLabelValues("success").Inc()
	logger.Info("Account created", zap.String("profile_id", profile.ID))

	return s.sessionFor(profile), token, nil
}

// Login verifies credentials and returns the session plus a signed
// session token. Unknown emails and wrong passwords produce the same
// error so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.UserSession, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	profile, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		metrics.Logins.WithLabelValues("failed").Inc()
		return nil, "", apperrors.UnauthorizedError("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
		metrics.Logins.WithLabelValues("failed").Inc()
		return nil, "", apperrors.UnauthorizedError("invalid email or password")
	}

	token, err := s.tokenManager.GenerateToken(profile.ID, profile.Email, profile.Name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	metrics.Logins.WithLabelValues("success").Inc()
	logger.Info("User logged in", zap.String("profile_id", profile.ID))

	return s.sessionFor(profile), token, nil
}

// IsProfileComplete reports whether the user finished onboarding. The
// flag is cached briefly so completion guards stay cheap.
func (s *AuthService) IsProfileComplete(ctx context.Context, userID string) (bool, error) {
	if complete, found := s.completion.Get(userID); found {
		return complete, nil
	}

	complete, err := s.profiles.IsComplete(ctx, userID)
	if err != nil {
		return false, err
	}
	s.completion.Set(userID, complete)
	return complete, nil
}

// MarkProfileComplete records a successful submission in the
// completion cache so the next guarded request sees it immediately.
func (s *AuthService) MarkProfileComplete(userID string) {
	s.completion.Set(userID, true)
}

// GetSessionTTL returns the session lifetime in seconds for cookies.
func (s *AuthService) GetSessionTTL() int {
	return s.config.Session.SessionTTLHours * 3600
}

// GetCookieDomain returns the configured session cookie domain.
func (s *AuthService) GetCookieDomain() string {
	return s.config.Session.CookieDomain
}

// GetCookieSecure returns whether session cookies require HTTPS.
func (s *AuthService) GetCookieSecure() bool {
	return s.config.Session.CookieSecure
}

// GetTokenManager exposes the token manager for middleware.
func (s *AuthService) GetTokenManager() *jwt.TokenManager {
	return s.tokenManager
}

func (s *AuthService) sessionFor(profile *models.Profile) *models.UserSession {
	return &models.UserSession{
		UserID: profile.ID,
		Email:  profile.Email,
		Name:   profile.Name,
	}
}

// Ensure AuthService implements AuthServiceInterface
var _ AuthServiceInterface = (*AuthService)(nil)
