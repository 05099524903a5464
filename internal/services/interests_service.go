package services

import (
	"context"

	"github.com/shah-aaseesh/outsmash-connect-grow/internal/cache"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/models"
)

// InterestsService serves the selectable interests catalog from the
// in-memory cache.
type InterestsService struct {
	cache *cache.InterestsCache
}

// NewInterestsService creates a new interests service
func NewInterestsService(interestsCache *cache.InterestsCache) *InterestsService {
	return &InterestsService{cache: interestsCache}
}

// GetCatalog returns the interests catalog.
func (s *InterestsService) GetCatalog(ctx context.Context) ([]models.Interest, error) {
	return s.cache.Get(ctx)
}

// Ensure InterestsService implements InterestsServiceInterface
var _ InterestsServiceInterface = (*InterestsService)(nil)
