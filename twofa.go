package authcove

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"

	"github.com/google/uuid"
)

const (
	twoFACodeMin = 100_000
	twoFACodeMax = 999_999
)

// LoginAttemptID identifies a single login attempt that requires a
// second factor. It is an opaque UUID-formatted string generated fresh
// for every such attempt.
type LoginAttemptID struct {
	value string
}

// NewLoginAttemptID generates a random attempt id.
func NewLoginAttemptID() LoginAttemptID {
	return LoginAttemptID{value: uuid.NewString()}
}

// ParseLoginAttemptID validates that raw is syntactically a UUID.
func ParseLoginAttemptID(raw string) (LoginAttemptID, error) {
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return LoginAttemptID{}, fmt.Errorf("%w: malformed login attempt id", ErrInvalidCredentials)
	}
	return LoginAttemptID{value: parsed.String()}, nil
}

func (id LoginAttemptID) String() string {
	return id.value
}

// TwoFACode is a 6-digit one-time code in [100000, 999999].
type TwoFACode struct {
	value string
}

// NewTwoFACode generates a uniformly random code.
func NewTwoFACode() (TwoFACode, error) {
	span := big.NewInt(twoFACodeMax - twoFACodeMin + 1)
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return TwoFACode{}, fmt.Errorf("%w: %v", ErrUnexpected, err)
	}
	return TwoFACode{value: strconv.FormatInt(n.Int64()+twoFACodeMin, 10)}, nil
}

// ParseTwoFACode rejects non-numeric or out-of-range input.
func ParseTwoFACode(raw string) (TwoFACode, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < twoFACodeMin || n > twoFACodeMax {
		return TwoFACode{}, fmt.Errorf("%w: malformed 2fa code", ErrInvalidCredentials)
	}
	return TwoFACode{value: raw}, nil
}

func (c TwoFACode) String() string {
	return c.value
}
