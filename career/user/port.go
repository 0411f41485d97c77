package user

import (
	"context"

	"github.com/Abraxas-365/careerkit/pkg/kernel"
)

type Repository interface {
	// Create creates a new user account
	Create(ctx context.Context, u *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id kernel.UserID) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email kernel.Email) (*User, error)

	// Update persists profile changes (name, locale, photo URL)
	Update(ctx context.Context, u *User) error

	// UpdatePassword replaces the stored password hash. Returns
	// ErrUserNotFound when the user no longer exists.
	UpdatePassword(ctx context.Context, id kernel.UserID, passwordHash string) error

	// Delete removes the account; owned documents go with it.
	Delete(ctx context.Context, id kernel.UserID) error
}

// MailSender dispatches transactional mail.
type MailSender interface {
	SendHTML(to, subject, htmlBody string) error
}
