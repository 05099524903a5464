package repository

import (
	"context"

	"github.com/shah-aaseesh/outsmash-connect-grow/internal/database/postgres"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/models"
)

// PostgresProfileDataSource implements ProfileDataSource using PostgreSQL
type PostgresProfileDataSource struct {
	client *postgres.Client
}

// NewPostgresProfileDataSource creates a new PostgreSQL profile data source
func NewPostgresProfileDataSource(client *postgres.Client) *PostgresProfileDataSource {
	return &PostgresProfileDataSource{client: client}
}

func (ds *PostgresProfileDataSource) Create(ctx context.Context, email, passwordHash, name string) (*models.Profile, error) {
	return ds.client.CreateProfile(ctx, email, passwordHash, name)
}

func (ds *PostgresProfileDataSource) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return ds.client.GetProfileByEmail(ctx, email)
}

func (ds *PostgresProfileDataSource) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	return ds.client.GetProfileByID(ctx, id)
}

func (ds *PostgresProfileDataSource) GetBySlug(ctx context.Context, slug string) (*models.Profile, error) {
	return ds.client.GetProfileBySlug(ctx, slug)
}

func (ds *PostgresProfileDataSource) Complete(ctx context.Context, profileID, slug string, draft *models.ProfileDraft) error {
	return ds.client.CompleteProfile(ctx, profileID, slug, draft)
}

func (ds *PostgresProfileDataSource) IsComplete(ctx context.Context, profileID string) (bool, error) {
	return ds.client.IsProfileComplete(ctx, profileID)
}

func (ds *PostgresProfileDataSource) SlugExists(ctx context.Context, slug string) (bool, error) {
	return ds.client.SlugExists(ctx, slug)
}

// Ensure PostgresProfileDataSource implements ProfileDataSource
var _ ProfileDataSource = (*PostgresProfileDataSource)(nil)

// PostgresPhotoDataSource implements PhotoDataSource using PostgreSQL
type PostgresPhotoDataSource struct {
	client *postgres.Client
}

// NewPostgresPhotoDataSource creates a new PostgreSQL photo data source
func NewPostgresPhotoDataSource(client *postgres.Client) *PostgresPhotoDataSource {
	return &PostgresPhotoDataSource{client: client}
}

func (ds *PostgresPhotoDataSource) Upsert(ctx context.Context, profileID, url string, position int) error {
	return ds.client.UpsertPhoto(ctx, profileID, url, position)
}

func (ds *PostgresPhotoDataSource) DeleteFrom(ctx context.Context, profileID string, position int) error {
	return ds.client.DeletePhotosFrom(ctx, profileID, position)
}

func (ds *PostgresPhotoDataSource) GetByProfileID(ctx context.Context, profileID string) ([]*models.Photo, error) {
	return ds.client.GetPhotosByProfileID(ctx, profileID)
}

// Ensure PostgresPhotoDataSource implements PhotoDataSource
var _ PhotoDataSource = (*PostgresPhotoDataSource)(nil)

// PostgresPreferencesDataSource implements PreferencesDataSource using PostgreSQL
type PostgresPreferencesDataSource struct {
	client *postgres.Client
}

// NewPostgresPreferencesDataSource creates a new PostgreSQL preferences data source
func NewPostgresPreferencesDataSource(client *postgres.Client) *PostgresPreferencesDataSource {
	return &PostgresPreferencesDataSource{client: client}
}

func (ds *PostgresPreferencesDataSource) Upsert(ctx context.Context, prefs *models.Preferences) error {
	return ds.client.UpsertPreferences(ctx, prefs)
}

func (ds *PostgresPreferencesDataSource) Get(ctx context.Context, profileID string) (*models.Preferences, error) {
	return ds.client.GetPreferences(ctx, profileID)
}

// Ensure PostgresPreferencesDataSource implements PreferencesDataSource
var _ PreferencesDataSource = (*PostgresPreferencesDataSource)(nil)

// PostgresInterestsDataSource implements InterestsDataSource using PostgreSQL
type PostgresInterestsDataSource struct {
	client *postgres.Client
}

// NewPostgresInterestsDataSource creates a new PostgreSQL interests data source
func NewPostgresInterestsDataSource(client *postgres.Client) *PostgresInterestsDataSource {
	return &PostgresInterestsDataSource{client: client}
}

func (ds *PostgresInterestsDataSource) GetAll(ctx context.Context) ([]models.Interest, error) {
	return ds.client.GetAllInterests(ctx)
}

func (ds *PostgresInterestsDataSource) UpsertProfileInterest(ctx context.Context, profileID, interestName string) error {
	return ds.client.UpsertProfileInterest(ctx, profileID, interestName)
}

func (ds *PostgresInterestsDataSource) ClearProfileInterestsExcept(ctx context.Context, profileID string, keep []string) error {
	return ds.client.ClearProfileInterestsExcept(ctx, profileID, keep)
}

func (ds *PostgresInterestsDataSource) GetNamesByProfileID(ctx context.Context, profileID string) ([]string, error) {
	return ds.client.GetInterestNamesByProfileID(ctx, profileID)
}

// Ensure PostgresInterestsDataSource implements InterestsDataSource
var _ InterestsDataSource = (*PostgresInterestsDataSource)(nil)
