package authcove

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/authcove/authcove/token"
)

const twoFAEmailSubject = "2FA Code"

// Dependencies are the store and port implementations the engine
// composes. The engine borrows these shared handles; each store owns
// its records exclusively and serializes its own mutations.
type Dependencies struct {
	Users        UserStore
	BannedTokens BannedTokenStore
	TwoFACodes   TwoFACodeStore
	Email        EmailClient

	// Logger receives internal causes of unexpected errors. Pass
	// zerolog.Nop() to silence. Raw email addresses are never logged.
	Logger zerolog.Logger
}

// Engine orchestrates the credential and session lifecycle: signup,
// login, 2FA verification, token verification, and logout. One logical
// operation runs per inbound request; the engine holds no mutable
// state of its own and is safe for concurrent use.
type Engine struct {
	config Config
	users  UserStore
	banned BannedTokenStore
	twoFA  TwoFACodeStore
	email  EmailClient
	tokens *token.Service
	logger zerolog.Logger
}

// LoginResult is the outcome of a successful Login call. Exactly one
// shape is populated: a session token when no second factor is
// required, or the challenge metadata when one is. The 2FA code itself
// is never part of the result; it travels out-of-band.
type LoginResult struct {
	Token string

	TwoFARequired  bool
	LoginAttemptID string
}

// New validates cfg, builds the token service from it, and wires the
// engine.
func New(cfg Config, deps Dependencies) (*Engine, error) {
	cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Users == nil || deps.BannedTokens == nil || deps.TwoFACodes == nil || deps.Email == nil {
		return nil, errors.New("authcove: user store, banned token store, 2fa code store, and email client are all required")
	}

	tokens, err := token.NewService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	return &Engine{
		config: cfg,
		users:  deps.Users,
		banned: deps.BannedTokens,
		twoFA:  deps.TwoFACodes,
		email:  deps.Email,
		tokens: tokens,
		logger: deps.Logger,
	}, nil
}

// Signup creates a credential record. It returns ErrInvalidCredentials
// for malformed input, ErrUserAlreadyExists for a taken email, and
// ErrUnexpected for storage failures.
func (e *Engine) Signup(ctx context.Context, rawEmail, rawPassword string, requiresTwoFA bool) error {
	email, err := ParseEmail(rawEmail)
	if err != nil {
		return err
	}
	pw, err := ParsePassword(rawPassword)
	if err != nil {
		return err
	}

	if err := e.users.Add(ctx, email, pw, requiresTwoFA); err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			return ErrUserAlreadyExists
		}
		e.logger.Error().Err(err).Str("op", "signup").Msg("user store add failed")
		return fmt.Errorf("%w: adding user", ErrUnexpected)
	}
	return nil
}

// Login authenticates email/password. Any credential mismatch,
// whether unknown user or wrong password, collapses to
// ErrIncorrectCredentials so callers cannot enumerate accounts. For
// users with a second factor it creates a pending challenge, delivers
// the code out-of-band, and returns the attempt id; no session token
// is issued until the challenge is answered.
func (e *Engine) Login(ctx context.Context, rawEmail, rawPassword string) (*LoginResult, error) {
	email, err := ParseEmail(rawEmail)
	if err != nil {
		return nil, err
	}
	pw, err := ParsePassword(rawPassword)
	if err != nil {
		return nil, err
	}

	if err := e.users.Validate(ctx, email, pw); err != nil {
		if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrInvalidCredentials) {
			return nil, ErrIncorrectCredentials
		}
		e.logger.Error().Err(err).Str("op", "login").Msg("credential validation failed")
		return nil, fmt.Errorf("%w: validating credentials", ErrUnexpected)
	}

	user, err := e.users.Get(ctx, email)
	if err != nil {
		return nil, ErrIncorrectCredentials
	}

	if !user.RequiresTwoFA {
		signed, err := e.tokens.Issue(email.String())
		if err != nil {
			e.logger.Error().Err(err).Str("op", "login").Msg("token issuance failed")
			return nil, fmt.Errorf("%w: issuing token", ErrUnexpected)
		}
		return &LoginResult{Token: signed}, nil
	}

	return e.startTwoFAChallenge(ctx, email)
}

// startTwoFAChallenge registers a fresh (attempt id, code) pair for
// email and delivers the code. A prior pending challenge for the same
// email is overwritten. Failure of either the store write or the
// delivery leaves the login incomplete; the client must retry login.
func (e *Engine) startTwoFAChallenge(ctx context.Context, email Email) (*LoginResult, error) {
	attemptID := NewLoginAttemptID()
	code, err := NewTwoFACode()
	if err != nil {
		e.logger.Error().Err(err).Str("op", "login").Msg("2fa code generation failed")
		return nil, err
	}

	if err := e.twoFA.Add(ctx, email, attemptID, code); err != nil {
		e.logger.Error().Err(err).Str("op", "login").Msg("2fa code store add failed")
		return nil, fmt.Errorf("%w: storing 2fa challenge", ErrUnexpected)
	}

	sendCtx, cancel := context.WithTimeout(ctx, e.config.EmailTimeout)
	defer cancel()
	if err := e.email.Send(sendCtx, email, twoFAEmailSubject, code.String()); err != nil {
		e.logger.Error().Err(err).Str("op", "login").Msg("2fa code delivery failed")
		return nil, fmt.Errorf("%w: sending 2fa code", ErrUnexpected)
	}

	return &LoginResult{
		TwoFARequired:  true,
		LoginAttemptID: attemptID.String(),
	}, nil
}

// VerifyTwoFA completes a pending login. It succeeds only when both
// the attempt id and the code exactly equal the stored pair; a missing
// challenge and a mismatched pair are indistinguishable to the caller.
// The consumed challenge is removed before the session token is issued
// so a correct code cannot be replayed.
func (e *Engine) VerifyTwoFA(ctx context.Context, rawEmail, rawAttemptID, rawCode string) (string, error) {
	email, err := ParseEmail(rawEmail)
	if err != nil {
		return "", err
	}
	attemptID, err := ParseLoginAttemptID(rawAttemptID)
	if err != nil {
		return "", err
	}
	code, err := ParseTwoFACode(rawCode)
	if err != nil {
		return "", err
	}

	storedID, storedCode, err := e.twoFA.Get(ctx, email)
	if err != nil {
		if errors.Is(err, ErrTwoFACodeNotFound) {
			return "", ErrIncorrectCredentials
		}
		e.logger.Error().Err(err).Str("op", "verify-2fa").Msg("2fa code store get failed")
		return "", fmt.Errorf("%w: loading 2fa challenge", ErrUnexpected)
	}

	if storedID != attemptID || storedCode != code {
		return "", ErrIncorrectCredentials
	}

	if err := e.twoFA.Remove(ctx, email); err != nil {
		e.logger.Error().Err(err).Str("op", "verify-2fa").Msg("2fa code store remove failed")
		return "", fmt.Errorf("%w: consuming 2fa challenge", ErrUnexpected)
	}

	signed, err := e.tokens.Issue(email.String())
	if err != nil {
		e.logger.Error().Err(err).Str("op", "verify-2fa").Msg("token issuance failed")
		return "", fmt.Errorf("%w: issuing token", ErrUnexpected)
	}
	return signed, nil
}

// VerifyToken runs full session-token verification: revocation first,
// then signature, then expiry. Every failure collapses to
// ErrInvalidToken.
func (e *Engine) VerifyToken(ctx context.Context, tokenStr string) (*token.Claims, error) {
	claims, err := e.tokens.Verify(ctx, tokenStr, e.banned)
	if err != nil {
		e.logger.Debug().Err(err).Str("op", "verify-token").Msg("token rejected")
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Logout revokes a currently valid session token. A missing token is a
// distinct, caller-visible error; an invalid or already-revoked token
// fails verification. Revocation is checked before signature work, so
// a second logout with the same token always fails.
func (e *Engine) Logout(ctx context.Context, tokenStr string) error {
	if tokenStr == "" {
		return ErrMissingToken
	}

	if _, err := e.tokens.Verify(ctx, tokenStr, e.banned); err != nil {
		return ErrInvalidToken
	}

	if err := e.banned.Add(ctx, tokenStr); err != nil {
		e.logger.Error().Err(err).Str("op", "logout").Msg("banned token store add failed")
		return fmt.Errorf("%w: revoking token", ErrUnexpected)
	}
	return nil
}
