package lettersrv

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Abraxas-365/careerkit/career/letter"
	"github.com/Abraxas-365/careerkit/internal/ai/letterwriter"
	"github.com/Abraxas-365/careerkit/pkg/kernel"
)

// Service implements cover letter CRUD and AI drafting.
type Service struct {
	repo    letter.Repository
	drafter letter.Drafter
}

func NewService(repo letter.Repository, drafter letter.Drafter) *Service {
	return &Service{
		repo:    repo,
		drafter: drafter,
	}
}

// Create stores a new letter.
func (s *Service) Create(ctx context.Context, userID kernel.UserID, req letter.CreateLetterRequest) (*letter.Letter, error) {
	l := &letter.Letter{
		ID:        kernel.NewLetterID(uuid.NewString()),
		UserID:    userID,
		Title:     req.Title,
		Company:   req.Company,
		Position:  req.Position,
		Recipient: req.Recipient,
		Body:      req.Body,
		Locale:    kernel.Locale(req.Locale).Normalize(),
	}
	l.Touch()
	l.CreatedAt = l.UpdatedAt

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Get returns one letter, scoped to its owner.
func (s *Service) Get(ctx context.Context, userID kernel.UserID, id kernel.LetterID) (*letter.Letter, error) {
	return s.getOwned(ctx, userID, id)
}

// List returns a page of the user's letters.
func (s *Service) List(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[letter.Letter], error) {
	return s.repo.ListByUser(ctx, userID, pagination)
}

// Update applies partial changes.
func (s *Service) Update(ctx context.Context, userID kernel.UserID, id kernel.LetterID, req letter.UpdateLetterRequest) (*letter.Letter, error) {
	l, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		l.Title = *req.Title
	}
	if req.Company != nil {
		l.Company = *req.Company
	}
	if req.Position != nil {
		l.Position = *req.Position
	}
	if req.Recipient != nil {
		l.Recipient = *req.Recipient
	}
	if req.Body != nil {
		l.Body = *req.Body
	}
	if req.Locale != nil {
		l.Locale = kernel.Locale(*req.Locale).Normalize()
	}
	l.Touch()

	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Delete removes a letter.
func (s *Service) Delete(ctx context.Context, userID kernel.UserID, id kernel.LetterID) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Generate drafts a letter body with the AI writer and optionally persists it
// as a new letter.
func (s *Service) Generate(ctx context.Context, userID kernel.UserID, req letter.GenerateLetterRequest) (*letter.GenerateLetterResponse, error) {
	locale := kernel.Locale(req.Locale).Normalize()

	body, err := s.drafter.Draft(ctx, letterwriter.DraftInput{
		Position:   req.Position,
		Company:    req.Company,
		Recipient:  req.Recipient,
		Highlights: req.Highlights,
		Locale:     locale,
	})
	if err != nil {
		return nil, letter.ErrRegistry.NewWithCause(letter.CodeDraftFailed, err)
	}

	resp := &letter.GenerateLetterResponse{Body: body}
	if !req.Save {
		return resp, nil
	}

	title := req.Position
	if req.Company != "" {
		title = fmt.Sprintf("%s at %s", req.Position, req.Company)
	}

	l := &letter.Letter{
		ID:        kernel.NewLetterID(uuid.NewString()),
		UserID:    userID,
		Title:     title,
		Company:   req.Company,
		Position:  req.Position,
		Recipient: req.Recipient,
		Body:      body,
		Locale:    locale,
		CreatedAt: time.Now(),
	}
	l.Touch()

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	resp.Letter = l
	return resp, nil
}

func (s *Service) getOwned(ctx context.Context, userID kernel.UserID, id kernel.LetterID) (*letter.Letter, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.UserID != userID {
		return nil, letter.ErrLetterNotFound()
	}
	return l, nil
}
