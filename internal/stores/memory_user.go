package stores

import (
	"context"
	"fmt"
	"sync"

	"github.com/authcove/authcove"
	"github.com/authcove/authcove/password"
)

// MemoryUserStore keeps credential records in a map guarded by a
// reader/writer lock. Reads run concurrently; mutations are exclusive.
// The lock is never held across a hash computation.
type MemoryUserStore struct {
	hasher *password.Pool

	mu    sync.RWMutex
	users map[string]authcove.User
}

// NewMemoryUserStore creates an empty store hashing through hasher.
func NewMemoryUserStore(hasher *password.Pool) *MemoryUserStore {
	return &MemoryUserStore{
		hasher: hasher,
		users:  make(map[string]authcove.User),
	}
}

// Add hashes the password off-lock, then inserts under the write lock.
// The duplicate check is repeated under the write lock so that two
// racing Adds for the same email have exactly one winner.
func (s *MemoryUserStore) Add(ctx context.Context, email authcove.Email, pw authcove.Password, requiresTwoFA bool) error {
	s.mu.RLock()
	_, exists := s.users[email.String()]
	s.mu.RUnlock()
	if exists {
		return authcove.ErrUserAlreadyExists
	}

	hash, err := s.hasher.Hash(ctx, pw.String())
	if err != nil {
		return fmt.Errorf("%w: %v", authcove.ErrUnexpected, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[email.String()]; exists {
		return authcove.ErrUserAlreadyExists
	}
	s.users[email.String()] = authcove.User{
		Email:         email,
		PasswordHash:  hash,
		RequiresTwoFA: requiresTwoFA,
	}
	return nil
}

// Get returns the record for email or ErrUserNotFound.
func (s *MemoryUserStore) Get(ctx context.Context, email authcove.Email) (authcove.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[email.String()]
	if !ok {
		return authcove.User{}, authcove.ErrUserNotFound
	}
	return user, nil
}

// Validate fetches the record under the read lock and verifies the
// candidate password off-lock.
func (s *MemoryUserStore) Validate(ctx context.Context, email authcove.Email, pw authcove.Password) error {
	s.mu.RLock()
	user, ok := s.users[email.String()]
	s.mu.RUnlock()
	if !ok {
		return authcove.ErrUserNotFound
	}

	ok, err := s.hasher.Verify(ctx, pw.String(), user.PasswordHash)
	if err != nil {
		return fmt.Errorf("%w: %v", authcove.ErrUnexpected, err)
	}
	if !ok {
		return authcove.ErrInvalidCredentials
	}
	return nil
}

var _ authcove.UserStore = (*MemoryUserStore)(nil)
