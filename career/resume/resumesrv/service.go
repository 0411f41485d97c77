package resumesrv

import (
	"context"
	"fmt"
	"path"

	"github.com/google/uuid"

	"github.com/Abraxas-365/careerkit/career/resume"
	"github.com/Abraxas-365/careerkit/pkg/fsx"
	"github.com/Abraxas-365/careerkit/pkg/kernel"
	"github.com/Abraxas-365/careerkit/pkg/logx"
)

// Service implements resume CRUD plus the embedding upkeep that powers
// similarity lookups.
type Service struct {
	repo     resume.Repository
	embedder resume.Embedder
	files    fsx.FileWriter
}

func NewService(repo resume.Repository, embedder resume.Embedder, files fsx.FileWriter) *Service {
	return &Service{
		repo:     repo,
		embedder: embedder,
		files:    files,
	}
}

// Create stores a new resume for the user. The first resume becomes the
// default automatically.
func (s *Service) Create(ctx context.Context, userID kernel.UserID, req resume.CreateResumeRequest) (*resume.Resume, error) {
	count, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= resume.MaxPerUser {
		return nil, resume.ErrMaxResumesExceeded().WithDetail("max", resume.MaxPerUser)
	}

	// Insert as default only when it is the user's first resume; a one-default
	// partial unique index guards the table. Promoting over an existing default
	// goes through SetDefault, which unsets the old row first.
	r := &resume.Resume{
		ID:           kernel.NewResumeID(uuid.NewString()),
		UserID:       userID,
		Title:        req.Title,
		IsDefault:    count == 0,
		PersonalInfo: req.PersonalInfo,
		Experience:   req.Experience,
		Education:    req.Education,
		Skills:       req.Skills,
		Languages:    req.Languages,
		Summary:      req.Summary,
	}
	r.Touch()
	r.CreatedAt = r.UpdatedAt

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	if req.IsDefault && count > 0 {
		if err := s.repo.SetDefault(ctx, r.ID, userID); err != nil {
			return nil, err
		}
		r.IsDefault = true
	}

	s.refreshEmbedding(ctx, r)
	return r, nil
}

// Get returns one resume, scoped to its owner.
func (s *Service) Get(ctx context.Context, userID kernel.UserID, id kernel.ResumeID) (*resume.Resume, error) {
	return s.getOwned(ctx, userID, id)
}

// List returns a page of the user's resumes, default first.
func (s *Service) List(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[resume.Resume], error) {
	return s.repo.ListByUser(ctx, userID, pagination)
}

// Update applies partial changes and refreshes the embedding when content
// changed.
func (s *Service) Update(ctx context.Context, userID kernel.UserID, id kernel.ResumeID, req resume.UpdateResumeRequest) (*resume.Resume, error) {
	r, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	contentChanged := false
	if req.Title != nil {
		r.Title = *req.Title
		contentChanged = true
	}
	if req.PersonalInfo != nil {
		r.PersonalInfo = *req.PersonalInfo
		contentChanged = true
	}
	if req.Experience != nil {
		r.Experience = *req.Experience
		contentChanged = true
	}
	if req.Education != nil {
		r.Education = *req.Education
		contentChanged = true
	}
	if req.Skills != nil {
		r.Skills = *req.Skills
		contentChanged = true
	}
	if req.Languages != nil {
		r.Languages = *req.Languages
		contentChanged = true
	}
	if req.Summary != nil {
		r.Summary = *req.Summary
		contentChanged = true
	}
	r.Touch()

	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}

	if contentChanged {
		s.refreshEmbedding(ctx, r)
	}
	return r, nil
}

// SetDefault marks a resume as the user's default.
func (s *Service) SetDefault(ctx context.Context, userID kernel.UserID, id kernel.ResumeID) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.SetDefault(ctx, id, userID)
}

// Delete removes a resume.
func (s *Service) Delete(ctx context.Context, userID kernel.UserID, id kernel.ResumeID) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// UploadPhoto stores a resume photo and records its URL.
func (s *Service) UploadPhoto(ctx context.Context, userID kernel.UserID, id kernel.ResumeID, filename, contentType string, data []byte) (*resume.Resume, error) {
	r, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	ext := path.Ext(filename)
	key := fmt.Sprintf("resumes/%s/photo-%s%s", id, uuid.NewString(), ext)

	url, err := s.files.WriteFile(ctx, key, data, contentType)
	if err != nil {
		return nil, resume.ErrRegistry.NewWithCause(resume.CodePhotoUploadFailed, err)
	}

	r.PhotoURL = url
	r.Touch()
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) getOwned(ctx context.Context, userID kernel.UserID, id kernel.ResumeID) (*resume.Resume, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Someone else's resume looks like a missing one.
	if r.UserID != userID {
		return nil, resume.ErrResumeNotFound()
	}
	return r, nil
}

// refreshEmbedding is best effort: a CRUD call never fails because the
// embedding backend is down; similarity lookups just skip the stale entry.
func (s *Service) refreshEmbedding(ctx context.Context, r *resume.Resume) {
	text := r.ContentText()
	if text == "" {
		return
	}

	vector, err := s.embedder.GenerateEmbedding(ctx, text)
	if err != nil {
		logx.Warnf("embedding refresh failed for resume %s: %v", r.ID, err)
		return
	}
	if err := s.repo.UpdateEmbedding(ctx, r.ID, vector); err != nil {
		logx.Warnf("embedding store failed for resume %s: %v", r.ID, err)
	}
}
