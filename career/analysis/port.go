package analysis

import (
	"context"

	"github.com/Abraxas-365/careerkit/career/resume"
	"github.com/Abraxas-365/careerkit/internal/ai/cvreview"
	"github.com/Abraxas-365/careerkit/pkg/kernel"
)

type Repository interface {
	// Create persists an analysis result
	Create(ctx context.Context, a *Analysis) error

	// GetByID retrieves an analysis by ID
	GetByID(ctx context.Context, id kernel.AnalysisID) (*Analysis, error)

	// ListByUser retrieves a user's analysis history with pagination
	ListByUser(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[Analysis], error)

	// Delete removes an analysis
	Delete(ctx context.Context, id kernel.AnalysisID) error
}

// Reviewer grades resume text against a job description.
type Reviewer interface {
	Review(ctx context.Context, input cvreview.ReviewInput) (*cvreview.ReviewResult, error)
}

// ResumeSource is the slice of the resume repository the analysis flow needs:
// explicit lookup and similarity-based auto-pick.
type ResumeSource interface {
	GetByID(ctx context.Context, id kernel.ResumeID) (*resume.Resume, error)
	MostSimilar(ctx context.Context, userID kernel.UserID, query []float32) (*resume.Resume, error)
}

// Embedder turns the job description into a query vector for auto-pick.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}
