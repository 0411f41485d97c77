package letter

import (
	"time"

	"github.com/Abraxas-365/careerkit/pkg/kernel"
)

// Letter is a user-owned cover letter, hand-written or AI-drafted.
type Letter struct {
	ID     kernel.LetterID `db:"id" json:"id"`
	UserID kernel.UserID   `db:"user_id" json:"user_id"`

	Title     string        `db:"title" json:"title"`
	Company   string        `db:"company" json:"company,omitempty"`
	Position  string        `db:"position" json:"position,omitempty"`
	Recipient string        `db:"recipient" json:"recipient,omitempty"`
	Body      string        `db:"body" json:"body"`
	Locale    kernel.Locale `db:"locale" json:"locale"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func (l *Letter) Touch() {
	l.UpdatedAt = time.Now()
}
