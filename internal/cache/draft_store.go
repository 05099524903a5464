package cache

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/shah-aaseesh/outsmash-connect-grow/internal/onboarding"
	"github.com/shah-aaseesh/outsmash-connect-grow/pkg/logger"
)

// DraftStore keeps each user's in-progress onboarding wizard in
// memory with a sliding TTL. A wizard that sees no activity for the
// TTL window is evicted; the user then starts onboarding from a fresh
// draft.
type DraftStore struct {
	cache *gocache.Cache
	ttl   time.Duration
	mu    sync.Mutex
}

// NewDraftStore creates a draft store with the given idle TTL.
func NewDraftStore(ttl time.Duration) *DraftStore {
	return &DraftStore{
		cache: gocache.New(ttl, 10*time.Minute),
		ttl:   ttl,
	}
}

// GetOrCreate returns the user's wizard, creating one with the given
// constructor if none exists. Concurrent calls for the same user get
// the same wizard.
func (s *DraftStore) GetOrCreate(userID string, create func() *onboarding.Wizard) *onboarding.Wizard {
	s.mu.Lock()
	defer s.mu.Unlock()

	if data, found := s.cache.Get(userID); found {
		s.cache.Set(userID, data, s.ttl)
		return data.(*onboarding.Wizard)
	}

	w := create()
	s.cache.Set(userID, w, s.ttl)
	logger.Debug("Created onboarding draft", zap.String("user_id", userID))
	return w
}

// Get returns the user's wizard if one exists, refreshing its TTL.
func (s *DraftStore) Get(userID string) (*onboarding.Wizard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, found := s.cache.Get(userID)
	if !found {
		return nil, false
	}
	s.cache.Set(userID, data, s.ttl)
	return data.(*onboarding.Wizard), true
}

// Delete drops the user's wizard, typically after completion.
func (s *DraftStore) Delete(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Delete(userID)
}
