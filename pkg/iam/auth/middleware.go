package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/careerkit/pkg/kernel"
)

const (
	localUserID = "auth_user_id"
	localEmail  = "auth_email"
)

// AuthContext is the authenticated identity attached to a request.
type AuthContext struct {
	UserID kernel.UserID
	Email  kernel.Email
}

// TokenMiddleware validates bearer tokens on protected routes.
type TokenMiddleware struct {
	tokenService TokenService
}

func NewAuthMiddleware(tokenService TokenService) *TokenMiddleware {
	return &TokenMiddleware{tokenService: tokenService}
}

// Authenticate rejects requests without a valid bearer token and stores the
// resolved identity in request locals.
func (m *TokenMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing authorization header")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid authorization format")
		}

		claims, err := m.tokenService.ValidateAccessToken(parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		c.Locals(localUserID, claims.UserID)
		c.Locals(localEmail, claims.Email)
		return c.Next()
	}
}

// GetAuthContext extracts the authenticated identity from request locals.
func GetAuthContext(c *fiber.Ctx) (AuthContext, bool) {
	userID, ok := c.Locals(localUserID).(kernel.UserID)
	if !ok || userID.IsEmpty() {
		return AuthContext{}, false
	}
	email, _ := c.Locals(localEmail).(kernel.Email)
	return AuthContext{UserID: userID, Email: email}, true
}
