package authcove_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authcove/authcove"
	"github.com/authcove/authcove/internal/email"
	"github.com/authcove/authcove/internal/stores"
	"github.com/authcove/authcove/password"
)

type engineFixture struct {
	engine *authcove.Engine
	twoFA  *stores.MemoryTwoFACodeStore
	email  *email.MockClient
}

func newEngine(t *testing.T) *engineFixture {
	t.Helper()

	hasher, err := password.NewArgon2(password.Config{
		Memory:      8 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   16,
	})
	require.NoError(t, err)
	pool, err := password.NewPool(hasher, 4)
	require.NoError(t, err)

	twoFA := stores.NewMemoryTwoFACodeStore(10 * time.Minute)
	mock := &email.MockClient{}

	engine, err := authcove.New(
		authcove.Config{JWTSecret: []byte("test-secret")},
		authcove.Dependencies{
			Users:        stores.NewMemoryUserStore(pool),
			BannedTokens: stores.NewMemoryBannedTokenStore(10 * time.Minute),
			TwoFACodes:   twoFA,
			Email:        mock,
			Logger:       zerolog.Nop(),
		},
	)
	require.NoError(t, err)

	return &engineFixture{engine: engine, twoFA: twoFA, email: mock}
}

func TestSignup(t *testing.T) {
	ctx := context.Background()
	fx := newEngine(t)

	require.NoError(t, fx.engine.Signup(ctx, "test@example.com", "password123", false))

	err := fx.engine.Signup(ctx, "test@example.com", "password456", false)
	assert.ErrorIs(t, err, authcove.ErrUserAlreadyExists)
}

func TestSignupRejectsMalformedInput(t *testing.T) {
	ctx := context.Background()
	fx := newEngine(t)

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "password123"},
		{"email without at sign", "testexample.com", "password123"},
		{"short password", "test@example.com", "short"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := fx.engine.Signup(ctx, tc.email, tc.password, false)
			assert.ErrorIs(t, err, authcove.ErrInvalidCredentials)
		})
	}
}

func TestLoginIssuesToken(t *testing.T) {
	ctx := context.Background()
	fx := newEngine(t)
	require.NoError(t, fx.engine.Signup(ctx, "test@example.com", "password123", false))

	result, err := fx.engine.Login(ctx, "test@example.com", "password123")
	require.NoError(t, err)
	assert.False(t, result.TwoFARequired)
	assert.NotEmpty(t, result.Token)

	claims, err := fx.engine.VerifyToken(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", claims.Subject)
}

func TestLoginCollapsesCredentialFailures(t *testing.T) {
	ctx := context.Background()
	fx := newEngine(t)
	require.NoError(t, fx.engine.Signup(ctx, "test@example.com", "password123", false))

	// Unknown user and wrong password must be indistinguishable.
	_, err := fx.engine.Login(ctx, "ghost@example.com", "password123")
	assert.ErrorIs(t, err, authcove.ErrIncorrectCredentials)

	_, err = fx.engine.Login(ctx, "test@example.com", "wrong-password")
	assert.ErrorIs(t, err, authcove.ErrIncorrectCredentials)
}

func TestLoginStartsTwoFAChallenge(t *testing.T) {
	ctx := context.Background()
	fx := newEngine(t)
	require.NoError(t, fx.engine.Signup(ctx, "test@example.com", "password123", true))

	result, err := fx.engine.Login(ctx, "test@example.com", "password123")
	require.NoError(t, err)
	assert.True(t, result.TwoFARequired)
	assert.Empty(t, result.Token, "no session token before the challenge is answered")
	assert.NotEmpty(t, result.LoginAttemptID)

	emailAddr, err := authcove.ParseEmail("test@example.com")
	require.NoError(t, err)
	storedID, storedCode, err := fx.twoFA.Get(ctx, emailAddr)
	require.NoError(t, err)
	assert.Equal(t, result.LoginAttemptID, storedID.String())

	sent := fx.email.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "test@example.com", sent[0].Recipient.String())
	assert.Equal(t, "2FA Code", sent[0].Subject)
	assert.Equal(t, storedCode.String(), sent[0].Content)
}

func TestLoginDeliveryFailure(t *testing.T) {
	ctx := context.Background()
	fx := newEngine(t)
	require.NoError(t, fx.engine.Signup(ctx, "test@example.com", "password123", true))

	fx.email.Err = errors.New("smtp down")
	_, err := fx.engine.Login(ctx, "test@example.com", "password123")
	assert.ErrorIs(t, err, authcove.ErrUnexpected)
}

func TestLoginOverwritesPendingChallenge(t *testing.T) {
	ctx := context.Background()
	fx := newEngine(t)
	require.NoError(t, fx.engine.Signup(ctx, "test@example.com", "password123", true))

	first, err := fx.engine.Login(ctx, "test@example.com", "password123")
	require.NoError(t, err)
	second, err := fx.engine.Login(ctx, "test@example.com", "password123")
	require.NoError(t, err)
	require.NotEqual(t, first.LoginAttemptID, second.LoginAttemptID)

	sent := fx.email.Sent()
	require.Len(t, sent, 2)

	// The superseded challenge no longer verifies.
	_, err = fx.engine.VerifyTwoFA(ctx, "test@example.com", first.LoginAttemptID, sent[0].Content)
	assert.ErrorIs(t, err, authcove.ErrIncorrectCredentials)

	token, err := fx.engine.VerifyTwoFA(ctx, "test@example.com", second.LoginAttemptID, sent[1].Content)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestVerifyTwoFA(t *testing.T) {
	ctx := context.Background()
	fx := newEngine(t)
	require.NoError(t, fx.engine.Signup(ctx, "test@example.com", "password123", true))

	result, err := fx.engine.Login(ctx, "test@example.com", "password123")
	require.NoError(t, err)
	code := fx.email.Sent()[0].Content

	token, err := fx.engine.VerifyTwoFA(ctx, "test@example.com", result.LoginAttemptID, code)
	require.NoError(t, err)

	claims, err := fx.engine.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", claims.Subject)

	// Consumed challenges cannot be replayed.
	_, err = fx.engine.VerifyTwoFA(ctx, "test@example.com", result.LoginAttemptID, code)
	assert.ErrorIs(t, err, authcove.ErrIncorrectCredentials)
}

func TestVerifyTwoFAMismatch(t *testing.T) {
	ctx := context.Background()
	fx := newEngine(t)
	require.NoError(t, fx.engine.Signup(ctx, "test@example.com", "password123", true))

	result, err := fx.engine.Login(ctx, "test@example.com", "password123")
	require.NoError(t, err)
	code := fx.email.Sent()[0].Content

	wrongCode := "100000"
	if code == wrongCode {
		wrongCode = "100001"
	}

	// Wrong code, wrong attempt id, and no pending challenge at all
	// must all look the same to the caller.
	_, err = fx.engine.VerifyTwoFA(ctx, "test@example.com", result.LoginAttemptID, wrongCode)
	assert.ErrorIs(t, err, authcove.ErrIncorrectCredentials)

	_, err = fx.engine.VerifyTwoFA(ctx, "test@example.com", authcove.NewLoginAttemptID().String(), code)
	assert.ErrorIs(t, err, authcove.ErrIncorrectCredentials)

	_, err = fx.engine.VerifyTwoFA(ctx, "ghost@example.com", result.LoginAttemptID, code)
	assert.ErrorIs(t, err, authcove.ErrIncorrectCredentials)
}

func TestLogoutRevokesToken(t *testing.T) {
	ctx := context.Background()
	fx := newEngine(t)
	require.NoError(t, fx.engine.Signup(ctx, "test@example.com", "password123", false))

	result, err := fx.engine.Login(ctx, "test@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, fx.engine.Logout(ctx, result.Token))

	_, err = fx.engine.VerifyToken(ctx, result.Token)
	assert.ErrorIs(t, err, authcove.ErrInvalidToken)

	// The token is already revoked, so a second logout fails.
	err = fx.engine.Logout(ctx, result.Token)
	assert.ErrorIs(t, err, authcove.ErrInvalidToken)
}

func TestLogoutEdgeCases(t *testing.T) {
	ctx := context.Background()
	fx := newEngine(t)

	assert.ErrorIs(t, fx.engine.Logout(ctx, ""), authcove.ErrMissingToken)
	assert.ErrorIs(t, fx.engine.Logout(ctx, "not-a-jwt"), authcove.ErrInvalidToken)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	ctx := context.Background()
	fx := newEngine(t)

	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := fx.engine.VerifyToken(ctx, raw)
		assert.ErrorIs(t, err, authcove.ErrInvalidToken)
	}
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := authcove.New(authcove.Config{JWTSecret: []byte("test-secret")}, authcove.Dependencies{})
	assert.Error(t, err)

	_, err = authcove.New(authcove.Config{}, authcove.Dependencies{})
	assert.Error(t, err)
}
