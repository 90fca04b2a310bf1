package cache

import (
	"context"
	"sync"
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
)

// InMemoryIdempotencyStore implements IdempotencyStore with a map. It is only
// correct for a single API instance.
type InMemoryIdempotencyStore struct {
	mu        sync.Mutex
	expiry    map[string]time.Time
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryIdempotencyStore creates the store and starts a goroutine that
// evicts expired keys
func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	store := &InMemoryIdempotencyStore{
		expiry:   make(map[string]time.Time),
		now:      time.Now,
		stopChan: make(chan struct{}),
	}

	store.wg.Add(1)
	go store.cleanupLoop(5 * time.Minute)

	return store
}

// Reserve claims key unless an unexpired reservation exists
func (s *InMemoryIdempotencyStore) Reserve(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if exp, ok := s.expiry[key]; ok && now.Before(exp) {
		return false, nil
	}
	s.expiry[key] = now.Add(ttl)
	return true, nil
}

// Release drops the reservation
func (s *InMemoryIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.expiry, key)
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (s *InMemoryIdempotencyStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

func (s *InMemoryIdempotencyStore) cleanupLoop(every time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *InMemoryIdempotencyStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, exp := range s.expiry {
		if !now.Before(exp) {
			delete(s.expiry, key)
		}
	}
}

// Size returns the number of stored keys, expired or not
func (s *InMemoryIdempotencyStore) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.expiry)
}

// Ensure InMemoryIdempotencyStore implements IdempotencyStore
var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)
