package stores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/authcove/authcove"
)

const twoFACodeKeyPrefix = "two_fa_code:"

// RedisTwoFACodeStore keeps pending challenges in Redis, keyed by
// email with a native TTL. SET overwrites, so a new login attempt
// replaces a prior pending challenge and restarts the window.
type RedisTwoFACodeStore struct {
	redis redis.UniversalClient
	ttl   time.Duration
}

// NewRedisTwoFACodeStore creates a store with the given challenge
// lifetime.
func NewRedisTwoFACodeStore(redisClient redis.UniversalClient, ttl time.Duration) *RedisTwoFACodeStore {
	return &RedisTwoFACodeStore{redis: redisClient, ttl: ttl}
}

func twoFACodeKey(email authcove.Email) string {
	return twoFACodeKeyPrefix + email.String()
}

// Add registers a challenge for email, overwriting any pending one.
func (s *RedisTwoFACodeStore) Add(ctx context.Context, email authcove.Email, id authcove.LoginAttemptID, code authcove.TwoFACode) error {
	encoded, err := json.Marshal([2]string{id.String(), code.String()})
	if err != nil {
		return fmt.Errorf("%w: %v", authcove.ErrUnexpected, err)
	}
	if err := s.redis.Set(ctx, twoFACodeKey(email), encoded, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", authcove.ErrUnexpected, err)
	}
	return nil
}

// Remove deletes the pending challenge for email.
func (s *RedisTwoFACodeStore) Remove(ctx context.Context, email authcove.Email) error {
	if err := s.redis.Del(ctx, twoFACodeKey(email)).Err(); err != nil {
		return fmt.Errorf("%w: %v", authcove.ErrUnexpected, err)
	}
	return nil
}

// Get returns the pending pair for email, or ErrTwoFACodeNotFound once
// the key has expired or was never set.
func (s *RedisTwoFACodeStore) Get(ctx context.Context, email authcove.Email) (authcove.LoginAttemptID, authcove.TwoFACode, error) {
	data, err := s.redis.Get(ctx, twoFACodeKey(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return authcove.LoginAttemptID{}, authcove.TwoFACode{}, authcove.ErrTwoFACodeNotFound
		}
		return authcove.LoginAttemptID{}, authcove.TwoFACode{}, fmt.Errorf("%w: %v", authcove.ErrUnexpected, err)
	}

	var pair [2]string
	if err := json.Unmarshal(data, &pair); err != nil {
		return authcove.LoginAttemptID{}, authcove.TwoFACode{}, fmt.Errorf("%w: %v", authcove.ErrUnexpected, err)
	}

	id, err := authcove.ParseLoginAttemptID(pair[0])
	if err != nil {
		return authcove.LoginAttemptID{}, authcove.TwoFACode{}, fmt.Errorf("%w: stored attempt id malformed", authcove.ErrUnexpected)
	}
	code, err := authcove.ParseTwoFACode(pair[1])
	if err != nil {
		return authcove.LoginAttemptID{}, authcove.TwoFACode{}, fmt.Errorf("%w: stored code malformed", authcove.ErrUnexpected)
	}
	return id, code, nil
}

var _ authcove.TwoFACodeStore = (*RedisTwoFACodeStore)(nil)
