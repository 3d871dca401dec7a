package token_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/authcove/authcove/token"
)

type fakeRevocations struct {
	revoked map[string]bool
	err     error
}

func (f *fakeRevocations) Contains(ctx context.Context, tok string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.revoked[tok], nil
}

func newService(t *testing.T, ttl time.Duration) *token.Service {
	t.Helper()
	svc, err := token.NewService([]byte("test-secret"), ttl)
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}
	return svc
}

func TestNewServiceRejectsBadConfig(t *testing.T) {
	if _, err := token.NewService(nil, time.Minute); err == nil {
		t.Fatal("expected empty secret to be rejected")
	}
	if _, err := token.NewService([]byte("secret"), 0); err == nil {
		t.Fatal("expected zero ttl to be rejected")
	}
}

func TestIssueAndVerify(t *testing.T) {
	svc := newService(t, 600*time.Second)

	signed, err := svc.Issue("test@example.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if parts := strings.Split(signed, "."); len(parts) != 3 {
		t.Fatalf("token is not in compact JWS form: %q", signed)
	}

	claims, err := svc.Verify(context.Background(), signed, &fakeRevocations{})
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.Subject != "test@example.com" {
		t.Fatalf("Subject = %q", claims.Subject)
	}
	if remaining := time.Until(claims.ExpiresAt); remaining < 9*time.Minute {
		t.Fatalf("expiry too close: %v remaining", remaining)
	}
}

func TestVerifyRevokedFailsBeforeDecoding(t *testing.T) {
	svc := newService(t, 600*time.Second)

	// A garbage string that would fail signature checks anyway; the
	// revocation verdict must come first.
	_, err := svc.Verify(context.Background(), "revoked-garbage", &fakeRevocations{
		revoked: map[string]bool{"revoked-garbage": true},
	})
	if !errors.Is(err, token.ErrRevoked) {
		t.Fatalf("Verify error = %v, want ErrRevoked", err)
	}
}

func TestVerifyRevokedValidToken(t *testing.T) {
	svc := newService(t, 600*time.Second)

	signed, err := svc.Issue("test@example.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = svc.Verify(context.Background(), signed, &fakeRevocations{
		revoked: map[string]bool{signed: true},
	})
	if !errors.Is(err, token.ErrRevoked) {
		t.Fatalf("Verify error = %v, want ErrRevoked", err)
	}
}

func TestVerifyExpired(t *testing.T) {
	svc := newService(t, time.Nanosecond)

	signed, err := svc.Issue("test@example.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	_, err = svc.Verify(context.Background(), signed, &fakeRevocations{})
	if !errors.Is(err, token.ErrExpired) {
		t.Fatalf("Verify error = %v, want ErrExpired", err)
	}
}

func TestVerifyTamperedSignature(t *testing.T) {
	svc := newService(t, 600*time.Second)

	signed, err := svc.Issue("test@example.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	foreign, err := token.NewService([]byte("another-secret"), 600*time.Second)
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}
	if _, err := foreign.Verify(context.Background(), signed, &fakeRevocations{}); !errors.Is(err, token.ErrInvalid) {
		t.Fatalf("Verify with wrong secret error = %v, want ErrInvalid", err)
	}

	if _, err := svc.Verify(context.Background(), "not.a.jwt", &fakeRevocations{}); !errors.Is(err, token.ErrInvalid) {
		t.Fatalf("Verify of malformed token error = %v, want ErrInvalid", err)
	}
}

func TestVerifyRevocationBackendFailure(t *testing.T) {
	svc := newService(t, 600*time.Second)

	signed, err := svc.Issue("test@example.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	backendErr := errors.New("backend down")
	_, err = svc.Verify(context.Background(), signed, &fakeRevocations{err: backendErr})
	if !errors.Is(err, backendErr) {
		t.Fatalf("Verify error = %v, want wrapped backend error", err)
	}
}
