package authcove

import "context"

// UserStore owns credential records. Implementations must guarantee
// that two concurrent Add calls for the same email have exactly one
// succeed; the other observes [ErrUserAlreadyExists].
//
// Add hashes the password before persisting it. Hashing is CPU-bound
// and implementations dispatch it to a bounded worker pool; store
// locks are never held across the hash computation.
type UserStore interface {
	// Add creates a record, failing with ErrUserAlreadyExists when the
	// email is taken.
	Add(ctx context.Context, email Email, password Password, requiresTwoFA bool) error
	// Get returns the record for email or ErrUserNotFound.
	Get(ctx context.Context, email Email) (User, error)
	// Validate verifies password against the stored hash. It returns
	// ErrUserNotFound or ErrInvalidCredentials on mismatch; callers are
	// responsible for collapsing the two externally.
	Validate(ctx context.Context, email Email, password Password) error
}

// BannedTokenStore owns the set of revoked session tokens.
// Implementations cap retention at the token TTL rather than storing
// tokens indefinitely: a token past its natural expiry fails signature
// validation anyway.
type BannedTokenStore interface {
	// Add marks token as revoked for the remainder of its lifetime.
	Add(ctx context.Context, token string) error
	// Contains reports whether token is known to be revoked. Absence
	// means "not known revoked", not "valid".
	Contains(ctx context.Context, token string) (bool, error)
}

// TwoFACodeStore owns pending two-factor challenges, at most one per
// email. Add overwrites any prior challenge for the email and starts a
// fixed expiry window; Get behaves as not-found once the window has
// passed. The store does not delete on Get; callers remove a consumed
// challenge so a code cannot be replayed.
type TwoFACodeStore interface {
	Add(ctx context.Context, email Email, id LoginAttemptID, code TwoFACode) error
	Remove(ctx context.Context, email Email) error
	// Get returns the pending (attempt id, code) pair for email, or
	// ErrTwoFACodeNotFound when absent or expired.
	Get(ctx context.Context, email Email) (LoginAttemptID, TwoFACode, error)
}

// EmailClient is the outbound notification port used to deliver 2FA
// codes. Callers bound Send with a timeout so a slow provider cannot
// stall a login indefinitely.
type EmailClient interface {
	Send(ctx context.Context, recipient Email, subject, content string) error
}
