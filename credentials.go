package authcove

import "fmt"

const minPasswordLength = 8

// Password is a validated plaintext password. It exists only
// transiently between request parsing and hashing; it is never
// persisted or compared in plaintext.
type Password struct {
	value string
}

// ParsePassword validates a raw password string.
func ParsePassword(raw string) (Password, error) {
	if len(raw) < minPasswordLength {
		return Password{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidCredentials, minPasswordLength)
	}
	return Password{value: raw}, nil
}

// String returns the plaintext. Only hashing code should call this.
func (p Password) String() string {
	return p.value
}

// User is a credential record. Records are immutable once created;
// uniqueness is enforced by email.
type User struct {
	Email         Email
	PasswordHash  string
	RequiresTwoFA bool
}
