// Package userauth implements the stateless password-reset token. A token is
// the base64url payload `{"userId":...,"timestamp":...}` joined by a dot with
// the base64url HMAC-SHA256 of that payload segment. Nothing is stored server
// side; possession of a fresh, correctly signed token proves the reset request.
package userauth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/Abraxas-365/careerkit/pkg/kernel"
)

var (
	ErrInvalidToken = errors.New("invalid reset token")
	ErrTokenExpired = errors.New("reset token expired")
)

// TokenTTL is the validity window, inclusive: a token aged exactly TokenTTL
// still validates.
const TokenTTL = time.Hour

type resetPayload struct {
	UserID    string   `json:"userId"`
	Timestamp *float64 `json:"timestamp"`
}

// ResetTokenService issues and validates signed password-reset tokens.
type ResetTokenService struct {
	secret []byte
	ttl    time.Duration

	// Now is the clock; replaceable in tests.
	Now func() time.Time
}

func NewResetTokenService(secret string) *ResetTokenService {
	return &ResetTokenService{
		secret: []byte(secret),
		ttl:    TokenTTL,
		Now:    time.Now,
	}
}

// Issue creates a signed token for the user, stamped with the current time in
// Unix milliseconds.
func (s *ResetTokenService) Issue(userID kernel.UserID) (string, error) {
	payload := map[string]any{
		"userId":    userID.String(),
		"timestamp": s.Now().UnixMilli(),
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	segment := base64.RawURLEncoding.EncodeToString(raw)
	return segment + "." + s.sign(segment), nil
}

// Validate checks the signature and age of a token and returns the user it
// was issued for. Any malformed, tampered or unsigned token yields
// ErrInvalidToken; a structurally valid token older than the TTL yields
// ErrTokenExpired.
func (s *ResetTokenService) Validate(token string) (kernel.UserID, error) {
	segment, sig, ok := strings.Cut(token, ".")
	if !ok || segment == "" || sig == "" {
		return "", ErrInvalidToken
	}

	// Constant-time compare of the recomputed MAC.
	if !hmac.Equal([]byte(s.sign(segment)), []byte(sig)) {
		return "", ErrInvalidToken
	}

	raw, err := base64.RawURLEncoding.DecodeString(segment)
	if err != nil {
		return "", ErrInvalidToken
	}

	var payload resetPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", ErrInvalidToken
	}
	if payload.UserID == "" || payload.Timestamp == nil {
		return "", ErrInvalidToken
	}

	issued := int64(*payload.Timestamp)
	age := s.Now().UnixMilli() - issued
	if age < 0 {
		return "", ErrInvalidToken
	}
	if age > s.ttl.Milliseconds() {
		return "", ErrTokenExpired
	}

	return kernel.UserID(payload.UserID), nil
}

func (s *ResetTokenService) sign(segment string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(segment))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
