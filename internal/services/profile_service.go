package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shah-aaseesh/outsmash-connect-grow/config"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/models"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/repository"
)

// ProfileService serves completed public profiles.
type ProfileService struct {
	profiles  repository.ProfileDataSource
	photos    repository.PhotoDataSource
	interests repository.InterestsDataSource
	config    *config.Config
}

// NewProfileService creates a new profile service
func NewProfileService(
	profiles repository.ProfileDataSource,
	photos repository.PhotoDataSource,
	interests repository.InterestsDataSource,
	cfg *config.Config,
) *ProfileService {
	return &ProfileService{
		profiles:  profiles,
		photos:    photos,
		interests: interests,
		config:    cfg,
	}
}

// GetPublicProfile returns the public view of a completed profile.
func (s *ProfileService) GetPublicProfile(ctx context.Context, profileSlug string) (*models.PublicProfileResponse, error) {
	profile, err := s.profiles.GetBySlug(ctx, profileSlug)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, profile)
}

// GetOwnProfile returns the caller's own profile in the same shape as
// the public view.
func (s *ProfileService) GetOwnProfile(ctx context.Context, userID string) (*models.PublicProfileResponse, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, profile)
}

func (s *ProfileService) buildResponse(ctx context.Context, profile *models.Profile) (*models.PublicProfileResponse, error) {

	var (
		photoRows []*models.Photo
		names     []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		photoRows, err = s.photos.GetByProfileID(gctx, profile.ID)
		return err
	})
	g.Go(func() error {
		var err error
		names, err = s.interests.GetNamesByProfileID(gctx, profile.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	photoURLs := make([]string, 0, len(photoRows))
	for _, p := range photoRows {
		photoURLs = append(photoURLs, p.URL)
	}

	resp := profile.ToPublicResponse(s.config.Server.BaseURL, photoURLs, names, time.Now())
	return &resp, nil
}

// Ensure ProfileService implements ProfileServiceInterface
var _ ProfileServiceInterface = (*ProfileService)(nil)
