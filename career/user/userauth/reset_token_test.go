package userauth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/Abraxas-365/careerkit/pkg/kernel"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueValidateRoundTrip(t *testing.T) {
	svc := NewResetTokenService("test-secret")
	svc.Now = fixedClock(time.UnixMilli(1_700_000_000_000))

	token, err := svc.Issue(kernel.UserID("user-42"))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	userID, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if userID != "user-42" {
		t.Errorf("expected user-42, got %s", userID)
	}
}

func TestValidateAtExactTTLBoundary(t *testing.T) {
	issuedAt := time.UnixMilli(1_700_000_000_000)

	svc := NewResetTokenService("test-secret")
	svc.Now = fixedClock(issuedAt)

	token, err := svc.Issue(kernel.UserID("user-42"))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Exactly one hour old: still valid.
	svc.Now = fixedClock(issuedAt.Add(time.Hour))
	if _, err := svc.Validate(token); err != nil {
		t.Errorf("token aged exactly TTL should validate, got %v", err)
	}

	// One millisecond past the hour: expired.
	svc.Now = fixedClock(issuedAt.Add(time.Hour + time.Millisecond))
	if _, err := svc.Validate(token); err != ErrTokenExpired {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	svc := NewResetTokenService("test-secret")
	svc.Now = fixedClock(time.UnixMilli(1_700_000_000_000))

	token, err := svc.Issue(kernel.UserID("user-42"))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Flipping any single byte of the token must break it.
	for i := 0; i < len(token); i++ {
		mutated := []byte(token)
		mutated[i] ^= 0x01
		if _, err := svc.Validate(string(mutated)); err == nil {
			t.Errorf("tampered token at byte %d validated", i)
		}
	}
}

func TestValidateRejectsForgedPayload(t *testing.T) {
	svc := NewResetTokenService("test-secret")
	other := NewResetTokenService("other-secret")
	other.Now = fixedClock(time.UnixMilli(1_700_000_000_000))

	token, err := other.Issue(kernel.UserID("user-42"))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := svc.Validate(token); err != ErrInvalidToken {
		t.Errorf("token signed with a different secret validated: %v", err)
	}
}

func TestValidateRejectsUnsignedToken(t *testing.T) {
	svc := NewResetTokenService("test-secret")
	svc.Now = fixedClock(time.UnixMilli(1_700_000_000_000))

	// A bare base64url payload with no signature segment, the pre-signing
	// token shape, must be rejected.
	legacy := base64.RawURLEncoding.EncodeToString(
		[]byte(`{"userId":"user-42","timestamp":1700000000000}`))
	if _, err := svc.Validate(legacy); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for unsigned token, got %v", err)
	}
}

func TestValidateRejectsMalformedPayloads(t *testing.T) {
	svc := NewResetTokenService("test-secret")
	svc.Now = fixedClock(time.UnixMilli(1_700_000_000_000))

	sign := func(payload string) string {
		segment := base64.RawURLEncoding.EncodeToString([]byte(payload))
		return segment + "." + svc.sign(segment)
	}

	cases := map[string]string{
		"empty token":        "",
		"not base64":         "%%%." + svc.sign("%%%"),
		"not json":           sign("not json"),
		"missing userId":     sign(`{"timestamp":1700000000000}`),
		"empty userId":       sign(`{"userId":"","timestamp":1700000000000}`),
		"missing timestamp":  sign(`{"userId":"user-42"}`),
		"string timestamp":   sign(`{"userId":"user-42","timestamp":"soon"}`),
		"future timestamp":   sign(`{"userId":"user-42","timestamp":1700000000001}`),
		"trailing dot":       sign(`{"userId":"user-42","timestamp":1700000000000}`) + ".",
		"extra dot segments": "a.b.c",
	}

	for name, token := range cases {
		if _, err := svc.Validate(token); err != ErrInvalidToken {
			t.Errorf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestTokenShape(t *testing.T) {
	svc := NewResetTokenService("test-secret")
	svc.Now = fixedClock(time.UnixMilli(1_700_000_000_000))

	token, err := svc.Issue(kernel.UserID("user-42"))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if strings.ContainsAny(token, "+/=") {
		t.Errorf("token is not URL-safe: %s", token)
	}
	if strings.Count(token, ".") != 1 {
		t.Errorf("token should have exactly one separator: %s", token)
	}
}
