package letter

import (
	"context"

	"github.com/Abraxas-365/careerkit/internal/ai/letterwriter"
	"github.com/Abraxas-365/careerkit/pkg/kernel"
)

type Repository interface {
	// Create creates a new letter
	Create(ctx context.Context, l *Letter) error

	// Update rewrites a letter
	Update(ctx context.Context, l *Letter) error

	// GetByID retrieves a letter by ID
	GetByID(ctx context.Context, id kernel.LetterID) (*Letter, error)

	// ListByUser retrieves a user's letters with pagination, newest first
	ListByUser(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[Letter], error)

	// Delete removes a letter
	Delete(ctx context.Context, id kernel.LetterID) error
}

// Drafter produces a cover letter body from structured input.
type Drafter interface {
	Draft(ctx context.Context, input letterwriter.DraftInput) (string, error)
}
