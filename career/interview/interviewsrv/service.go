package interviewsrv

import (
	"context"

	"github.com/google/uuid"

	"github.com/Abraxas-365/careerkit/career/interview"
	"github.com/Abraxas-365/careerkit/pkg/kernel"
)

// Service implements mock-interview sessions: AI question generation, answer
// grading, and session lifecycle.
type Service struct {
	repo  interview.Repository
	coach interview.Coach
}

func NewService(repo interview.Repository, coach interview.Coach) *Service {
	return &Service{
		repo:  repo,
		coach: coach,
	}
}

// Create generates the question list and stores a fresh session.
func (s *Service) Create(ctx context.Context, userID kernel.UserID, req interview.CreateInterviewRequest) (*interview.Interview, error) {
	count := req.QuestionCount
	if count < 1 {
		count = interview.DefaultQuestionCount
	}
	if count > interview.MaxQuestionCount {
		count = interview.MaxQuestionCount
	}

	locale := kernel.Locale(req.Locale).Normalize()
	questions, err := s.coach.GenerateQuestions(ctx, req.Position, req.JobDescription, locale, count)
	if err != nil {
		return nil, interview.ErrRegistry.NewWithCause(interview.CodeGenerationFailed, err)
	}

	i := &interview.Interview{
		ID:             kernel.NewInterviewID(uuid.NewString()),
		UserID:         userID,
		Position:       req.Position,
		JobDescription: req.JobDescription,
		Locale:         locale,
		Status:         interview.StatusActive,
		Questions:      make([]interview.Question, 0, len(questions)),
	}
	for _, q := range questions {
		i.Questions = append(i.Questions, interview.Question{Text: q})
	}
	i.Touch()
	i.CreatedAt = i.UpdatedAt

	if err := s.repo.Create(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

// Answer evaluates one submitted answer and stores the feedback. The session
// flips to completed when the last open question is answered.
func (s *Service) Answer(ctx context.Context, userID kernel.UserID, id kernel.InterviewID, req interview.AnswerQuestionRequest) (*interview.Interview, error) {
	i, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if i.Status == interview.StatusCompleted {
		return nil, interview.ErrSessionCompleted()
	}
	if req.QuestionIndex < 0 || req.QuestionIndex >= len(i.Questions) {
		return nil, interview.ErrQuestionOutOfRange().
			WithDetail("index", req.QuestionIndex).
			WithDetail("questions", len(i.Questions))
	}

	q := &i.Questions[req.QuestionIndex]
	if q.Answered {
		return nil, interview.ErrAlreadyAnswered().WithDetail("index", req.QuestionIndex)
	}

	feedback, err := s.coach.EvaluateAnswer(ctx, i.Position, q.Text, req.Answer, i.Locale)
	if err != nil {
		return nil, interview.ErrRegistry.NewWithCause(interview.CodeEvaluationFailed, err)
	}

	q.Answer = req.Answer
	q.Answered = true
	q.Score = feedback.Score
	q.Feedback = feedback.Feedback
	q.Suggestions = feedback.Suggestions

	if i.AllAnswered() {
		i.Status = interview.StatusCompleted
	}
	i.Touch()

	if err := s.repo.Update(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

// Get returns one session, scoped to its owner.
func (s *Service) Get(ctx context.Context, userID kernel.UserID, id kernel.InterviewID) (*interview.Interview, error) {
	return s.getOwned(ctx, userID, id)
}

// List returns a page of the user's sessions.
func (s *Service) List(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[interview.Interview], error) {
	return s.repo.ListByUser(ctx, userID, pagination)
}

// Delete removes a session.
func (s *Service) Delete(ctx context.Context, userID kernel.UserID, id kernel.InterviewID) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) getOwned(ctx context.Context, userID kernel.UserID, id kernel.InterviewID) (*interview.Interview, error) {
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if i.UserID != userID {
		return nil, interview.ErrInterviewNotFound()
	}
	return i, nil
}
