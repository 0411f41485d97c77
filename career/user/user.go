package user

import (
	"time"

	"github.com/Abraxas-365/careerkit/pkg/kernel"
)

// User is an account that owns resumes, letters, interviews and analyses.
type User struct {
	ID           kernel.UserID `db:"id" json:"id"`
	Email        kernel.Email  `db:"email" json:"email"`
	PasswordHash string        `db:"password_hash" json:"-"`

	FullName string        `db:"full_name" json:"full_name"`
	Locale   kernel.Locale `db:"locale" json:"locale"`
	PhotoURL string        `db:"photo_url" json:"photo_url,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Touch bumps the update timestamp.
func (u *User) Touch() {
	u.UpdatedAt = time.Now()
}
