package handler

import (
	"testing"

	"github.com/secureauth/webclient/internal/core/domain"
)

func TestCredentialValidator_Login(t *testing.T) {
	cv := NewCredentialValidator()

	tests := []struct {
		name   string
		input  domain.LoginInput
		fields []string
	}{
		{
			name:  "valid",
			input: domain.LoginInput{Username: "johndoe", Password: "secret123"},
		},
		{
			name:   "two char username",
			input:  domain.LoginInput{Username: "jo", Password: "secret123"},
			fields: []string{"username"},
		},
		{
			name:   "empty username",
			input:  domain.LoginInput{Username: "", Password: "secret123"},
			fields: []string{"username"},
		},
		{
			name:   "short password",
			input:  domain.LoginInput{Username: "johndoe", Password: "12345"},
			fields: []string{"password"},
		},
		{
			name:   "short username regardless of password validity",
			input:  domain.LoginInput{Username: "jo", Password: "x"},
			fields: []string{"username", "password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cv.Validate(tt.input)
			assertFields(t, got, tt.fields)
		})
	}
}

func TestCredentialValidator_Register(t *testing.T) {
	cv := NewCredentialValidator()

	tests := []struct {
		name   string
		input  domain.RegisterInput
		fields []string
	}{
		{
			name:  "valid",
			input: domain.RegisterInput{Email: "jane@example.com", Username: "janedoe", Password: "secret123"},
		},
		{
			name:   "malformed email",
			input:  domain.RegisterInput{Email: "not-an-email", Username: "janedoe", Password: "secret123"},
			fields: []string{"email"},
		},
		{
			name:   "missing domain",
			input:  domain.RegisterInput{Email: "jane@", Username: "janedoe", Password: "secret123"},
			fields: []string{"email"},
		},
		{
			name:   "empty email",
			input:  domain.RegisterInput{Email: "", Username: "janedoe", Password: "secret123"},
			fields: []string{"email"},
		},
		{
			name:   "everything wrong",
			input:  domain.RegisterInput{Email: "nope", Username: "jo", Password: "123"},
			fields: []string{"email", "username", "password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cv.Validate(tt.input)
			assertFields(t, got, tt.fields)
		})
	}
}

func TestCredentialValidator_Messages(t *testing.T) {
	cv := NewCredentialValidator()

	got := cv.Validate(domain.LoginInput{Username: "jo", Password: "123"})
	if got["username"] != "Username must be at least 3 characters" {
		t.Fatalf("unexpected username message: %q", got["username"])
	}
	if got["password"] != "Password must be at least 6 characters" {
		t.Fatalf("unexpected password message: %q", got["password"])
	}

	got = cv.Validate(domain.RegisterInput{Email: "nope", Username: "janedoe", Password: "secret123"})
	if got["email"] != "Invalid email address" {
		t.Fatalf("unexpected email message: %q", got["email"])
	}
}

// Login mode never checks email: LoginInput simply has no email field, so a
// register-only failure cannot leak into a login validation.
func TestCredentialValidator_LoginIgnoresEmail(t *testing.T) {
	cv := NewCredentialValidator()

	got := cv.Validate(domain.LoginInput{Username: "johndoe", Password: "secret123"})
	if got != nil {
		t.Fatalf("expected valid login input, got %v", got)
	}
}

func assertFields(t *testing.T, got FieldErrors, want []string) {
	t.Helper()
	if len(want) == 0 {
		if got != nil {
			t.Fatalf("expected valid input, got errors: %v", got)
		}
		return
	}
	if len(got) != len(want) {
		t.Fatalf("expected errors on %v, got %v", want, got)
	}
	for _, f := range want {
		if got[f] == "" {
			t.Fatalf("expected error on field %q, got %v", f, got)
		}
	}
}
