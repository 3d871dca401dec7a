package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/authcove/authcove"
)

// Key prefixes keep store entries from colliding in a shared Redis.
const bannedTokenKeyPrefix = "banned_token:"

// RedisBannedTokenStore records revoked tokens in Redis with a native
// per-key TTL, making revocation visible cluster-wide and retention
// bounded at the token lifetime for free.
type RedisBannedTokenStore struct {
	redis redis.UniversalClient
	ttl   time.Duration
}

// NewRedisBannedTokenStore creates a store retaining tokens for ttl.
func NewRedisBannedTokenStore(redisClient redis.UniversalClient, ttl time.Duration) *RedisBannedTokenStore {
	return &RedisBannedTokenStore{redis: redisClient, ttl: ttl}
}

func bannedTokenKey(token string) string {
	return bannedTokenKeyPrefix + token
}

// Add marks token as revoked for the token TTL.
func (s *RedisBannedTokenStore) Add(ctx context.Context, token string) error {
	if err := s.redis.Set(ctx, bannedTokenKey(token), true, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", authcove.ErrUnexpected, err)
	}
	return nil
}

// Contains reports whether token is currently revoked.
func (s *RedisBannedTokenStore) Contains(ctx context.Context, token string) (bool, error) {
	n, err := s.redis.Exists(ctx, bannedTokenKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", authcove.ErrUnexpected, err)
	}
	return n > 0, nil
}

var _ authcove.BannedTokenStore = (*RedisBannedTokenStore)(nil)
