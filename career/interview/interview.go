package interview

import (
	"time"

	"github.com/Abraxas-365/careerkit/pkg/kernel"
)

// Status of a practice session.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// DefaultQuestionCount is used when the request does not ask for a specific
// number of questions.
const DefaultQuestionCount = 5

// MaxQuestionCount bounds one session.
const MaxQuestionCount = 10

// Question is one slot of a session: the generated question, and the answer
// with its AI evaluation once submitted.
type Question struct {
	Text        string   `json:"text"`
	Answer      string   `json:"answer,omitempty"`
	Answered    bool     `json:"answered"`
	Score       int      `json:"score,omitempty"`
	Feedback    string   `json:"feedback,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Interview is a mock-interview practice session. Questions are stored as one
// JSONB document; a session completes when every question is answered.
type Interview struct {
	ID     kernel.InterviewID `db:"id" json:"id"`
	UserID kernel.UserID      `db:"user_id" json:"user_id"`

	Position       string        `db:"position" json:"position"`
	JobDescription string        `db:"job_description" json:"job_description,omitempty"`
	Locale         kernel.Locale `db:"locale" json:"locale"`
	Status         Status        `db:"status" json:"status"`

	Questions []Question `db:"questions" json:"questions"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// AllAnswered reports whether every question has an evaluated answer.
func (i *Interview) AllAnswered() bool {
	for _, q := range i.Questions {
		if !q.Answered {
			return false
		}
	}
	return len(i.Questions) > 0
}

func (i *Interview) Touch() {
	i.UpdatedAt = time.Now()
}
