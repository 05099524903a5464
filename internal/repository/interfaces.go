package repository

import (
	"context"

	"github.com/shah-aaseesh/outsmash-connect-grow/internal/models"
)

// ProfileDataSource defines the interface for profile account storage
type ProfileDataSource interface {
	// Create inserts a new account row
	Create(ctx context.Context, email, passwordHash, name string) (*models.Profile, error)

	// GetByEmail fetches a profile including its password hash
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)

	// GetByID fetches a profile by primary key
	GetByID(ctx context.Context, id string) (*models.Profile, error)

	// GetBySlug fetches a completed profile by public slug
	GetBySlug(ctx context.Context, slug string) (*models.Profile, error)

	// Complete writes a finished draft onto the profile row
	Complete(ctx context.Context, profileID, slug string, draft *models.ProfileDraft) error

	// IsComplete reports whether the profile finished onboarding
	IsComplete(ctx context.Context, profileID string) (bool, error)

	// SlugExists reports whether any profile uses the slug
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// PhotoDataSource defines the interface for photo record storage
type PhotoDataSource interface {
	// Upsert writes one photo slot for a profile
	Upsert(ctx context.Context, profileID, url string, position int) error

	// DeleteFrom removes slots at or beyond the given position
	DeleteFrom(ctx context.Context, profileID string, position int) error

	// GetByProfileID returns a profile's photos ordered by slot
	GetByProfileID(ctx context.Context, profileID string) ([]*models.Photo, error)
}

// PreferencesDataSource defines the interface for discovery settings
type PreferencesDataSource interface {
	// Upsert writes a profile's discovery settings row
	Upsert(ctx context.Context, prefs *models.Preferences) error

	// Get fetches a profile's discovery settings
	Get(ctx context.Context, profileID string) (*models.Preferences, error)
}

// InterestsDataSource defines the interface for the interests catalog
// and per-profile interest links
type InterestsDataSource interface {
	// GetAll fetches the selectable interests catalog
	GetAll(ctx context.Context) ([]models.Interest, error)

	// UpsertProfileInterest links a profile to an interest by name
	UpsertProfileInterest(ctx context.Context, profileID, interestName string) error

	// ClearProfileInterestsExcept drops links outside the given set
	ClearProfileInterestsExcept(ctx context.Context, profileID string, keep []string) error

	// GetNamesByProfileID returns a profile's linked interest names
	GetNamesByProfileID(ctx context.Context, profileID string) ([]string, error)
}
