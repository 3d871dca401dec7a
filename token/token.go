package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrRevoked means the token is present in the revocation store.
	ErrRevoked = errors.New("token revoked")
	// ErrExpired means the token's exp claim has passed.
	ErrExpired = errors.New("token expired")
	// ErrInvalid covers every other verification failure: bad
	// signature, wrong algorithm, malformed compact form.
	ErrInvalid = errors.New("token invalid")
)

// RevocationChecker is the slice of the banned-token store that
// verification needs.
type RevocationChecker interface {
	Contains(ctx context.Context, token string) (bool, error)
}

// Claims is the decoded payload of a verified session token.
type Claims struct {
	// Subject is the authenticated email address.
	Subject string
	// ExpiresAt is the token's expiry instant.
	ExpiresAt time.Time
}

// Service signs and verifies session tokens. Tokens are self-contained
// HS256 JWTs with a {sub, exp} payload; the signing secret is fixed for
// the service's lifetime.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a Service. The secret must be non-empty and the
// TTL positive.
func NewService(secret []byte, ttl time.Duration) (*Service, error) {
	if len(secret) == 0 {
		return nil, errors.New("token: secret must not be empty")
	}
	if ttl <= 0 {
		return nil, errors.New("token: ttl must be positive")
	}
	return &Service{secret: secret, ttl: ttl}, nil
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token asserting subject with exp = now + TTL.
func (s *Service) Issue(subject string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks tokenStr against the revocation store, then the
// signature, then expiry, in that order. A revoked token fails before
// any cryptographic work, so a revoked-but-still-valid token is never
// accepted and double logout fails deterministically.
func (s *Service) Verify(ctx context.Context, tokenStr string, revoked RevocationChecker) (*Claims, error) {
	banned, err := revoked.Contains(ctx, tokenStr)
	if err != nil {
		return nil, fmt.Errorf("revocation check: %w", err)
	}
	if banned {
		return nil, ErrRevoked
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	parsed, err := parser.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid || claims.ExpiresAt == nil {
		return nil, ErrInvalid
	}

	return &Claims{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
