package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Abraxas-365/careerkit/pkg/kernel"
)

// TokenClaims is what a validated access token resolves to.
type TokenClaims struct {
	UserID    kernel.UserID
	Email     kernel.Email
	ExpiresAt time.Time
}

// TokenService issues and validates session tokens.
type TokenService interface {
	GenerateAccessToken(userID kernel.UserID, email kernel.Email) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

// JWTService implements TokenService with HS256 JWTs.
type JWTService struct {
	secretKey []byte
	tokenTTL  time.Duration
	issuer    string
}

func NewJWTService(secretKey string, tokenTTL time.Duration, issuer string) *JWTService {
	return &JWTService{
		secretKey: []byte(secretKey),
		tokenTTL:  tokenTTL,
		issuer:    issuer,
	}
}

type accessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (s *JWTService) GenerateAccessToken(userID kernel.UserID, email kernel.Email) (string, error) {
	now := time.Now()
	claims := accessClaims{
		Email: email.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

func (s *JWTService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	var claims accessClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil {
		return nil, fmt.Errorf("parse access token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid access token")
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return &TokenClaims{
		UserID:    kernel.UserID(claims.Subject),
		Email:     kernel.Email(claims.Email),
		ExpiresAt: expiresAt,
	}, nil
}
