package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/shah-aaseesh/outsmash-connect-grow/internal/models"
	"github.com/shah-aaseesh/outsmash-connect-grow/internal/repository"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/logger"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/metrics"
)

const (
	interestsCacheKey = "interests"
	interestsCacheTTL = 24 * time.Hour
)

// InterestsCache manages the in-memory cache for the interests catalog.
// The catalog changes rarely, so a long TTL with explicit refresh on
// startup is enough.
type InterestsCache struct {
	cache  *gocache.Cache
	source repository.InterestsDataSource
	mu     sync.RWMutex
	ready  bool
}

// NewInterestsCache creates a new interests catalog cache
func NewInterestsCache(source repository.InterestsDataSource) *InterestsCache {
	return &InterestsCache{
		cache:  gocache.New(interestsCacheTTL, time.Hour),
		source: source,
	}
}

// Initialize performs initial cache population (synchronous, blocks until ready)
// Should be called during application startup before accepting requests
func (ic *InterestsCache) Initialize(ctx context.Context) error {
	logger.Info("Initializing interests cache...")
	if _, err := ic.refresh(ctx); err != nil {
		logger.Error("Failed to initialize interests cache", zap.Error(err))
		return err
	}

	ic.mu.Lock()
	ic.ready = true
	ic.mu.Unlock()

	logger.Info("Interests cache initialized successfully")
	return nil
}

// IsReady returns true if the cache has been successfully initialized
func (ic *InterestsCache) IsReady() bool {
	ic.mu.RLock()
	defer ic.mu.RUnlock()
	return ic.ready
}

// Get retrieves the catalog from cache or fetches it on a miss
func (ic *InterestsCache) Get(ctx context.Context) ([]models.Interest, error) {
	if !ic.IsReady() {
		return nil, fmt.Errorf("interests cache not initialized")
	}

	if data, found := ic.cache.Get(interestsCacheKey); found {
		metrics.CacheHits.WithLabelValues("interests").Inc()
		interests, ok := data.([]models.Interest)
		if !ok {
			logger.Error("Invalid interests cache data type")
			ic.cache.Delete(interestsCacheKey)
			return nil, fmt.Errorf("invalid cache data type")
		}
		return interests, nil
	}

	metrics.CacheMisses.WithLabelValues("interests").Inc()
	logger.Info("Interests cache miss, fetching from database")
	return ic.refresh(ctx)
}

// Contains reports whether the catalog has an interest with the name.
func (ic *InterestsCache) Contains(ctx context.Context, name string) (bool, error) {
	interests, err := ic.Get(ctx)
	if err != nil {
		return false, err
	}
	for _, i := range interests {
		if i.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (ic *InterestsCache) refresh(ctx context.Context) ([]models.Interest, error) {
	interests, err := ic.source.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch interests: %w", err)
	}
	ic.cache.Set(interestsCacheKey, interests, interestsCacheTTL)
	logger.Debug("Interests cache refreshed", zap.Int("count", len(interests)))
	return interests, nil
}
