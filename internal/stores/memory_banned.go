package stores

import (
	"context"
	"sync"
	"time"

	"github.com/authcove/authcove"
)

// MemoryBannedTokenStore is a process-local revocation set. Entries
// are lost on restart, which is acceptable for single-instance and
// test deployments. Retention is capped at the token TTL: Contains
// treats an entry past its window as absent, and Add purges stale
// entries so the set stays bounded by the revocation rate within one
// TTL window.
type MemoryBannedTokenStore struct {
	ttl time.Duration

	mu     sync.RWMutex
	tokens map[string]time.Time
}

// NewMemoryBannedTokenStore creates an empty store retaining tokens
// for ttl.
func NewMemoryBannedTokenStore(ttl time.Duration) *MemoryBannedTokenStore {
	return &MemoryBannedTokenStore{
		ttl:    ttl,
		tokens: make(map[string]time.Time),
	}
}

// Add marks token as revoked until its natural expiry.
func (s *MemoryBannedTokenStore) Add(ctx context.Context, token string) error {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	for tok, expiry := range s.tokens {
		if now.After(expiry) {
			delete(s.tokens, tok)
		}
	}
	s.tokens[token] = now.Add(s.ttl)
	return nil
}

// Contains reports whether token is currently revoked.
func (s *MemoryBannedTokenStore) Contains(ctx context.Context, token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expiry, ok := s.tokens[token]
	if !ok {
		return false, nil
	}
	// Stale entries stay until the next Add purges them; they are
	// already invisible here.
	return time.Now().Before(expiry), nil
}

var _ authcove.BannedTokenStore = (*MemoryBannedTokenStore)(nil)
