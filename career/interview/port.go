package interview

import (
	"context"

	"github.com/Abraxas-365/careerkit/internal/ai/interviewer"
	"github.com/Abraxas-365/careerkit/pkg/kernel"
)

type Repository interface {
	// Create creates a new session
	Create(ctx context.Context, i *Interview) error

	// Update rewrites a session (questions, answers, status)
	Update(ctx context.Context, i *Interview) error

	// GetByID retrieves a session by ID
	GetByID(ctx context.Context, id kernel.InterviewID) (*Interview, error)

	// ListByUser retrieves a user's sessions with pagination, newest first
	ListByUser(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[Interview], error)

	// Delete removes a session
	Delete(ctx context.Context, id kernel.InterviewID) error
}

// Coach generates interview questions and grades answers.
type Coach interface {
	GenerateQuestions(ctx context.Context, position, jobDescription string, locale kernel.Locale, count int) ([]string, error)
	EvaluateAnswer(ctx context.Context, position, question, answer string, locale kernel.Locale) (*interviewer.AnswerFeedback, error)
}
