package memory

import (
	"context"
	"sync"
	"time"
)

// NonceStore implements ports.NonceStore in memory with per-entry expiry.
type NonceStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewNonceStore creates an empty in-memory nonce store.
func NewNonceStore() *NonceStore {
	return &NonceStore{entries: make(map[string]time.Time), now: time.Now}
}

// CheckAndSet returns true the first time scope/nonce is seen within ttl.
func (s *NonceStore) CheckAndSet(_ context.Context, scope string, nonce string, ttl time.Duration) (bool, error) {
	key := scope + ":" + nonce
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if exp, ok := s.entries[key]; ok && now.Before(exp) {
		return false, nil
	}
	s.entries[key] = now.Add(ttl)
	return true, nil
}

// Prune drops expired entries and returns how many were removed.
func (s *NonceStore) Prune() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for k, exp := range s.entries {
		if !now.Before(exp) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}
