package stores

import (
	"context"
	"sync"
	"time"

	"github.com/authcove/authcove"
)

type twoFAEntry struct {
	attemptID authcove.LoginAttemptID
	code      authcove.TwoFACode
	expiresAt time.Time
}

// MemoryTwoFACodeStore keeps at most one pending challenge per email.
// Expiry is enforced explicitly on Get so behavior matches the
// TTL-native Redis implementation.
type MemoryTwoFACodeStore struct {
	ttl time.Duration

	mu    sync.RWMutex
	codes map[string]twoFAEntry
}

// NewMemoryTwoFACodeStore creates an empty store with the given
// challenge lifetime.
func NewMemoryTwoFACodeStore(ttl time.Duration) *MemoryTwoFACodeStore {
	return &MemoryTwoFACodeStore{
		ttl:   ttl,
		codes: make(map[string]twoFAEntry),
	}
}

// Add registers a challenge, overwriting any pending one for the same
// email. Last writer wins.
func (s *MemoryTwoFACodeStore) Add(ctx context.Context, email authcove.Email, id authcove.LoginAttemptID, code authcove.TwoFACode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[email.String()] = twoFAEntry{
		attemptID: id,
		code:      code,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// Remove deletes the pending challenge for email. Removing an absent
// challenge is not an error.
func (s *MemoryTwoFACodeStore) Remove(ctx context.Context, email authcove.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, email.String())
	return nil
}

// Get returns the pending pair for email. An expired entry behaves as
// not found even though the record may physically remain until the
// next Add or Remove.
func (s *MemoryTwoFACodeStore) Get(ctx context.Context, email authcove.Email) (authcove.LoginAttemptID, authcove.TwoFACode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.codes[email.String()]
	if !ok || time.Now().After(entry.expiresAt) {
		return authcove.LoginAttemptID{}, authcove.TwoFACode{}, authcove.ErrTwoFACodeNotFound
	}
	return entry.attemptID, entry.code, nil
}

var _ authcove.TwoFACodeStore = (*MemoryTwoFACodeStore)(nil)
