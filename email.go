package authcove

import (
	"fmt"
	"strings"
)

// Email is a validated email address. Lookups and equality are exact
// string comparisons; no case folding or normalization is applied, so
// "A@b.com" and "a@b.com" are distinct users. Conventionally email is
// case-insensitive, but exact-match is the observed behavior and is
// kept deliberately.
//
// Email values are sensitive and must not appear in production logs.
type Email struct {
	value string
}

// ParseEmail validates and wraps a raw email string.
func ParseEmail(raw string) (Email, error) {
	if raw == "" || !strings.Contains(raw, "@") {
		return Email{}, fmt.Errorf("%w: malformed email", ErrInvalidCredentials)
	}
	return Email{value: raw}, nil
}

// String returns the raw address. Callers logging request context must
// use [Email.Redacted] instead.
func (e Email) String() string {
	return e.value
}

// Redacted returns a log-safe form of the address.
func (e Email) Redacted() string {
	i := strings.Index(e.value, "@")
	if i <= 0 {
		return "***"
	}
	return e.value[:1] + "***" + e.value[i:]
}

// IsZero reports whether the email is the zero value.
func (e Email) IsZero() bool {
	return e.value == ""
}
