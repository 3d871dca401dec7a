package authcove

import (
	"errors"
	"testing"
)

func TestParseEmail(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "test@example.com", wantErr: false},
		{name: "subaddressed", input: "a+tag@b.co", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "no at sign", input: "testexample.com", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			email, err := ParseEmail(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidCredentials) {
					t.Fatalf("ParseEmail(%q) error = %v, want ErrInvalidCredentials", tc.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseEmail(%q) error: %v", tc.input, err)
			}
			if email.String() != tc.input {
				t.Fatalf("ParseEmail(%q).String() = %q", tc.input, email.String())
			}
		})
	}
}

func TestEmailEqualityIsCaseSensitive(t *testing.T) {
	lower, err := ParseEmail("user@example.com")
	if err != nil {
		t.Fatalf("ParseEmail error: %v", err)
	}
	upper, err := ParseEmail("User@example.com")
	if err != nil {
		t.Fatalf("ParseEmail error: %v", err)
	}
	if lower == upper {
		t.Fatal("expected exact-string equality to treat differently cased addresses as distinct")
	}
}

func TestEmailRedacted(t *testing.T) {
	email, err := ParseEmail("alice@example.com")
	if err != nil {
		t.Fatalf("ParseEmail error: %v", err)
	}
	redacted := email.Redacted()
	if redacted == email.String() {
		t.Fatal("Redacted must not return the raw address")
	}
	if redacted != "a***@example.com" {
		t.Fatalf("Redacted() = %q", redacted)
	}
}
