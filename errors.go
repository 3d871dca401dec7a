package authcove

import "errors"

var (
	// ErrInvalidCredentials indicates that a submitted email, password,
	// login attempt id, or 2FA code failed domain validation.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrIncorrectCredentials is the collapsed outcome for any
	// authentication mismatch. Callers must not be able to tell a
	// missing user from a wrong password or a wrong 2FA pair.
	ErrIncorrectCredentials = errors.New("incorrect credentials")
	// ErrUserAlreadyExists is returned by signup when the email is taken.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrUserNotFound is a store-level error. It never crosses the
	// engine boundary uncollapsed.
	ErrUserNotFound = errors.New("user not found")
	// ErrMissingToken is returned by logout when no token was presented.
	ErrMissingToken = errors.New("missing token")
	// ErrInvalidToken covers revoked, expired, and malformed session
	// tokens alike.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTwoFACodeNotFound is a store-level error for an absent or
	// expired pending challenge.
	ErrTwoFACodeNotFound = errors.New("2fa code not found")
	// ErrUnexpected wraps storage, crypto, and transport failures. It is
	// terminal for the current operation; nothing is retried.
	ErrUnexpected = errors.New("unexpected error")
)
