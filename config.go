package authcove

import (
	"errors"
	"time"
)

// Defaults applied by [Config.withDefaults]. The token TTL matches the
// session cookie semantics: the cookie carries no Max-Age, so the
// token's own exp claim is the only expiry.
const (
	DefaultTokenTTL     = 600 * time.Second
	DefaultTwoFATTL     = 10 * time.Minute
	DefaultEmailTimeout = 10 * time.Second
)

// Config carries the engine's tunables. It is constructed once at
// startup and handed to components by reference; there are no global
// lazily-initialized secrets.
type Config struct {
	// JWTSecret is the symmetric HS256 signing key. It is static for
	// the lifetime of the process; key rotation is out of scope.
	JWTSecret []byte

	// TokenTTL bounds session token validity. Zero means DefaultTokenTTL.
	TokenTTL time.Duration

	// TwoFATTL bounds pending 2FA challenges. Zero means DefaultTwoFATTL.
	TwoFATTL time.Duration

	// EmailTimeout caps a single notification delivery. Zero means
	// DefaultEmailTimeout.
	EmailTimeout time.Duration
}

func (c *Config) withDefaults() {
	if c.TokenTTL == 0 {
		c.TokenTTL = DefaultTokenTTL
	}
	if c.TwoFATTL == 0 {
		c.TwoFATTL = DefaultTwoFATTL
	}
	if c.EmailTimeout == 0 {
		c.EmailTimeout = DefaultEmailTimeout
	}
}

// Validate rejects configurations the engine cannot run with.
func (c Config) Validate() error {
	if len(c.JWTSecret) == 0 {
		return errors.New("config: JWTSecret must not be empty")
	}
	if c.TokenTTL < 0 || c.TwoFATTL < 0 || c.EmailTimeout < 0 {
		return errors.New("config: durations must not be negative")
	}
	return nil
}
