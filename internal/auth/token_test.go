package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestResolveCredentialVerified(t *testing.T) {
	resolver := NewResolver("test-secret")

	token := signToken(t, "test-secret", jwt.MapClaims{
		"sub":   "subj_abc",
		"email": "person@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	identity, err := resolver.ResolveCredential("Bearer " + token)
	if err != nil {
		t.Fatalf("ResolveCredential() error = %v", err)
	}
	if identity.SubjectID != "subj_abc" {
		t.Errorf("SubjectID = %q, want subj_abc", identity.SubjectID)
	}
	if identity.Email != "person@example.com" {
		t.Errorf("Email = %q, want person@example.com", identity.Email)
	}
}

func TestResolveCredentialRejectsWrongSecret(t *testing.T) {
	resolver := NewResolver("test-secret")

	token := signToken(t, "other-secret", jwt.MapClaims{
		"sub": "subj_abc",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := resolver.ResolveCredential("Bearer " + token)
	if !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("error = %v, want ErrInvalidCredential", err)
	}
}

func TestResolveCredentialRejectsExpiredToken(t *testing.T) {
	resolver := NewResolver("test-secret")

	token := signToken(t, "test-secret", jwt.MapClaims{
		"sub": "subj_abc",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err := resolver.ResolveCredential("Bearer " + token)
	if !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("error = %v, want ErrInvalidCredential", err)
	}
}

func TestResolveCredentialRequiresSubject(t *testing.T) {
	resolver := NewResolver("test-secret")

	token := signToken(t, "test-secret", jwt.MapClaims{
		"email": "person@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	_, err := resolver.ResolveCredential("Bearer " + token)
	if !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("error = %v, want ErrInvalidCredential", err)
	}
}

func TestResolveCredentialMissingHeader(t *testing.T) {
	resolver := NewResolver("test-secret")

	for _, header := range []string{"", "Bearer ", "   "} {
		if _, err := resolver.ResolveCredential(header); !errors.Is(err, ErrInvalidCredential) {
			t.Errorf("ResolveCredential(%q) error = %v, want ErrInvalidCredential", header, err)
		}
	}
}

func TestResolveCredentialUnverifiedMode(t *testing.T) {
	// No secret configured: claims are decoded without signature checks.
	resolver := NewResolver("")

	token := signToken(t, "any-secret", jwt.MapClaims{
		"sub": "subj_xyz",
	})

	identity, err := resolver.ResolveCredential("bearer " + token)
	if err != nil {
		t.Fatalf("ResolveCredential() error = %v", err)
	}
	if identity.SubjectID != "subj_xyz" {
		t.Errorf("SubjectID = %q, want subj_xyz", identity.SubjectID)
	}
}
