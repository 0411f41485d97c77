package analysissrv

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Abraxas-365/careerkit/career/analysis"
	"github.com/Abraxas-365/careerkit/career/resume"
	"github.com/Abraxas-365/careerkit/internal/ai/cvreview"
	"github.com/Abraxas-365/careerkit/internal/pdf"
	"github.com/Abraxas-365/careerkit/pkg/errx"
	"github.com/Abraxas-365/careerkit/pkg/kernel"
	"github.com/Abraxas-365/careerkit/pkg/logx"
)

// Service runs CV-vs-job-description analyses and keeps their history.
type Service struct {
	repo     analysis.Repository
	reviewer analysis.Reviewer
	resumes  analysis.ResumeSource
	embedder analysis.Embedder

	// extractText is swappable in tests; production uses go-fitz.
	extractText func(data []byte) (string, error)
}

func NewService(repo analysis.Repository, reviewer analysis.Reviewer, resumes analysis.ResumeSource, embedder analysis.Embedder) *Service {
	return &Service{
		repo:        repo,
		reviewer:    reviewer,
		resumes:     resumes,
		embedder:    embedder,
		extractText: pdf.ExtractText,
	}
}

// Analyze resolves the resume text (explicit resume, uploaded PDF, or
// similarity auto-pick), runs the review, and persists the result.
func (s *Service) Analyze(ctx context.Context, userID kernel.UserID, req analysis.AnalyzeRequest) (*analysis.Analysis, error) {
	locale := kernel.Locale(req.Locale).Normalize()

	resumeText, resumeID, err := s.resolveResumeText(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	result, err := s.reviewer.Review(ctx, cvreview.ReviewInput{
		ResumeText:     resumeText,
		JobDescription: req.JobDescription,
		Locale:         locale,
	})
	if err != nil {
		return nil, analysis.ErrRegistry.NewWithCause(analysis.CodeReviewFailed, err)
	}

	a := &analysis.Analysis{
		ID:             kernel.NewAnalysisID(uuid.NewString()),
		UserID:         userID,
		ResumeID:       resumeID,
		JobDescription: req.JobDescription,
		Locale:         locale,
		MatchScore:     result.MatchScore,
		Strengths:      result.Strengths,
		Gaps:           result.Gaps,
		MissingSkills:  result.MissingSkills,
		Summary:        result.Summary,
		CreatedAt:      time.Now(),
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Get returns one analysis, scoped to its owner.
func (s *Service) Get(ctx context.Context, userID kernel.UserID, id kernel.AnalysisID) (*analysis.Analysis, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.UserID != userID {
		return nil, analysis.ErrAnalysisNotFound()
	}
	return a, nil
}

// List returns a page of the user's analysis history.
func (s *Service) List(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[analysis.Analysis], error) {
	return s.repo.ListByUser(ctx, userID, pagination)
}

// Delete removes an analysis.
func (s *Service) Delete(ctx context.Context, userID kernel.UserID, id kernel.AnalysisID) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) resolveResumeText(ctx context.Context, userID kernel.UserID, req analysis.AnalyzeRequest) (string, kernel.ResumeID, error) {
	// Uploaded PDF wins over everything else.
	if len(req.PDFData) > 0 {
		text, err := s.extractText(req.PDFData)
		if err != nil {
			return "", "", analysis.ErrRegistry.NewWithCause(analysis.CodePDFExtractFailed, err)
		}
		if text == "" {
			return "", "", analysis.ErrPDFExtractFailed().WithDetail("reason", "no text in PDF")
		}
		return text, "", nil
	}

	if req.ResumeID != "" {
		r, err := s.ownedResume(ctx, userID, kernel.ResumeID(req.ResumeID))
		if err != nil {
			return "", "", err
		}
		return r.ContentText(), r.ID, nil
	}

	// No source given: embed the job description and pick the closest resume.
	query, err := s.embedder.GenerateEmbedding(ctx, req.JobDescription)
	if err != nil {
		logx.Warnf("job description embedding failed: %v", err)
		return "", "", analysis.ErrRegistry.NewWithCause(analysis.CodeReviewFailed, err)
	}

	r, err := s.resumes.MostSimilar(ctx, userID, query)
	if err != nil {
		var appErr *errx.Error
		if errors.As(err, &appErr) && appErr.Type == errx.TypeNotFound {
			return "", "", analysis.ErrNoResumeAvailable()
		}
		return "", "", err
	}
	return r.ContentText(), r.ID, nil
}

func (s *Service) ownedResume(ctx context.Context, userID kernel.UserID, id kernel.ResumeID) (*resume.Resume, error) {
	r, err := s.resumes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.UserID != userID {
		return nil, resume.ErrResumeNotFound()
	}
	return r, nil
}
