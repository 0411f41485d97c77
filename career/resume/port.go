package resume

import (
	"context"

	"github.com/Abraxas-365/careerkit/pkg/kernel"
)

type Repository interface {
	// Create creates a new resume
	Create(ctx context.Context, r *Resume) error

	// Update rewrites a resume's content fields
	Update(ctx context.Context, r *Resume) error

	// GetByID retrieves a resume by ID
	GetByID(ctx context.Context, id kernel.ResumeID) (*Resume, error)

	// ListByUser retrieves a user's resumes with pagination, default first
	ListByUser(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[Resume], error)

	// CountByUser counts a user's resumes
	CountByUser(ctx context.Context, userID kernel.UserID) (int64, error)

	// GetDefaultByUser retrieves the user's default resume
	GetDefaultByUser(ctx context.Context, userID kernel.UserID) (*Resume, error)

	// SetDefault marks one resume as the default and unsets the others
	SetDefault(ctx context.Context, id kernel.ResumeID, userID kernel.UserID) error

	// Delete removes a resume
	Delete(ctx context.Context, id kernel.ResumeID) error

	// UpdateEmbedding replaces the stored content embedding
	UpdateEmbedding(ctx context.Context, id kernel.ResumeID, embedding []float32) error

	// MostSimilar returns the user's resume whose embedding is closest to the
	// query by cosine distance, or ErrResumeNotFound when the user has none.
	MostSimilar(ctx context.Context, userID kernel.UserID, query []float32) (*Resume, error)
}

// Embedder turns resume content into a vector.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}
