package interviewsrv

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Abraxas-365/careerkit/career/interview"
	"github.com/Abraxas-365/careerkit/internal/ai/interviewer"
	"github.com/Abraxas-365/careerkit/pkg/errx"
	"github.com/Abraxas-365/careerkit/pkg/kernel"
)

type fakeRepo struct {
	sessions map[kernel.InterviewID]*interview.Interview
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sessions: make(map[kernel.InterviewID]*interview.Interview)}
}

func (r *fakeRepo) Create(_ context.Context, i *interview.Interview) error {
	cp := *i
	cp.Questions = append([]interview.Question(nil), i.Questions...)
	r.sessions[i.ID] = &cp
	return nil
}

func (r *fakeRepo) Update(_ context.Context, i *interview.Interview) error {
	if _, ok := r.sessions[i.ID]; !ok {
		return interview.ErrInterviewNotFound()
	}
	cp := *i
	cp.Questions = append([]interview.Question(nil), i.Questions...)
	r.sessions[i.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id kernel.InterviewID) (*interview.Interview, error) {
	i, ok := r.sessions[id]
	if !ok {
		return nil, interview.ErrInterviewNotFound()
	}
	cp := *i
	cp.Questions = append([]interview.Question(nil), i.Questions...)
	return &cp, nil
}

func (r *fakeRepo) ListByUser(_ context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[interview.Interview], error) {
	var items []interview.Interview
	for _, i := range r.sessions {
		if i.UserID == userID {
			items = append(items, *i)
		}
	}
	return kernel.NewPaginated(items, pagination, len(items)), nil
}

func (r *fakeRepo) Delete(_ context.Context, id kernel.InterviewID) error {
	if _, ok := r.sessions[id]; !ok {
		return interview.ErrInterviewNotFound()
	}
	delete(r.sessions, id)
	return nil
}

type fakeCoach struct {
	generateErr error
	evaluateErr error
	score       int
}

func (c *fakeCoach) GenerateQuestions(_ context.Context, position, _ string, _ kernel.Locale, count int) ([]string, error) {
	if c.generateErr != nil {
		return nil, c.generateErr
	}
	questions := make([]string, count)
	for i := range questions {
		questions[i] = fmt.Sprintf("Question %d about %s?", i+1, position)
	}
	return questions, nil
}

func (c *fakeCoach) EvaluateAnswer(_ context.Context, _, _, _ string, _ kernel.Locale) (*interviewer.AnswerFeedback, error) {
	if c.evaluateErr != nil {
		return nil, c.evaluateErr
	}
	return &interviewer.AnswerFeedback{
		Score:       c.score,
		Feedback:    "Solid answer",
		Suggestions: []string{"Add a concrete example"},
	}, nil
}

func TestCreateGeneratesDefaultQuestionCount(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeCoach{score: 7})

	i, err := svc.Create(context.Background(), "user-1", interview.CreateInterviewRequest{
		Position: "Backend Engineer",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(i.Questions) != interview.DefaultQuestionCount {
		t.Errorf("expected %d questions, got %d", interview.DefaultQuestionCount, len(i.Questions))
	}
	if i.Status != interview.StatusActive {
		t.Errorf("new session should be active, got %s", i.Status)
	}
}

func TestCreateSurfacesGenerationFailure(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeCoach{generateErr: errors.New("model overloaded")})

	_, err := svc.Create(context.Background(), "user-1", interview.CreateInterviewRequest{
		Position: "Backend Engineer",
	})
	var appErr *errx.Error
	if !errors.As(err, &appErr) || appErr.Code != "INTERVIEW_GENERATION_FAILED" {
		t.Errorf("expected INTERVIEW_GENERATION_FAILED, got %v", err)
	}
}

func TestAnswerLifecycle(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeCoach{score: 8})

	i, err := svc.Create(context.Background(), "user-1", interview.CreateInterviewRequest{
		Position:      "Backend Engineer",
		QuestionCount: 2,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	i, err = svc.Answer(context.Background(), "user-1", i.ID, interview.AnswerQuestionRequest{
		QuestionIndex: 0,
		Answer:        "I would shard by tenant.",
	})
	if err != nil {
		t.Fatalf("answer 0: %v", err)
	}
	if !i.Questions[0].Answered || i.Questions[0].Score != 8 {
		t.Errorf("first answer not recorded: %+v", i.Questions[0])
	}
	if i.Status != interview.StatusActive {
		t.Errorf("session should stay active with open questions, got %s", i.Status)
	}

	// Re-answering the same slot conflicts.
	_, err = svc.Answer(context.Background(), "user-1", i.ID, interview.AnswerQuestionRequest{
		QuestionIndex: 0,
		Answer:        "Let me try again.",
	})
	var appErr *errx.Error
	if !errors.As(err, &appErr) || appErr.Code != "INTERVIEW_ALREADY_ANSWERED" {
		t.Errorf("expected INTERVIEW_ALREADY_ANSWERED, got %v", err)
	}

	i, err = svc.Answer(context.Background(), "user-1", i.ID, interview.AnswerQuestionRequest{
		QuestionIndex: 1,
		Answer:        "Observability first.",
	})
	if err != nil {
		t.Fatalf("answer 1: %v", err)
	}
	if i.Status != interview.StatusCompleted {
		t.Errorf("answering the last question should complete the session, got %s", i.Status)
	}

	// A completed session takes no more answers.
	_, err = svc.Answer(context.Background(), "user-1", i.ID, interview.AnswerQuestionRequest{
		QuestionIndex: 1,
		Answer:        "More.",
	})
	if !errors.As(err, &appErr) || appErr.Code != "INTERVIEW_SESSION_COMPLETED" {
		t.Errorf("expected INTERVIEW_SESSION_COMPLETED, got %v", err)
	}
}

func TestAnswerIndexOutOfRange(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeCoach{score: 5})

	i, err := svc.Create(context.Background(), "user-1", interview.CreateInterviewRequest{
		Position:      "Backend Engineer",
		QuestionCount: 2,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Answer(context.Background(), "user-1", i.ID, interview.AnswerQuestionRequest{
		QuestionIndex: 2,
		Answer:        "Out of bounds.",
	})
	var appErr *errx.Error
	if !errors.As(err, &appErr) || appErr.Code != "INTERVIEW_QUESTION_OUT_OF_RANGE" {
		t.Errorf("expected INTERVIEW_QUESTION_OUT_OF_RANGE, got %v", err)
	}
}

func TestAnswerFailureLeavesQuestionOpen(t *testing.T) {
	repo := newFakeRepo()
	coach := &fakeCoach{score: 5}
	svc := NewService(repo, coach)

	i, err := svc.Create(context.Background(), "user-1", interview.CreateInterviewRequest{
		Position:      "Backend Engineer",
		QuestionCount: 1,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	coach.evaluateErr = errors.New("model overloaded")
	if _, err := svc.Answer(context.Background(), "user-1", i.ID, interview.AnswerQuestionRequest{
		QuestionIndex: 0,
		Answer:        "My answer.",
	}); err == nil {
		t.Fatal("evaluation failure should surface")
	}

	stored, _ := repo.GetByID(context.Background(), i.ID)
	if stored.Questions[0].Answered {
		t.Error("failed evaluation must not mark the question answered")
	}

	// The user can retry the same question once the backend recovers.
	coach.evaluateErr = nil
	if _, err := svc.Answer(context.Background(), "user-1", i.ID, interview.AnswerQuestionRequest{
		QuestionIndex: 0,
		Answer:        "My answer.",
	}); err != nil {
		t.Errorf("retry after recovery failed: %v", err)
	}
}

func TestInterviewOwnershipScoping(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeCoach{score: 5})

	i, err := svc.Create(context.Background(), "user-1", interview.CreateInterviewRequest{
		Position: "Backend Engineer",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Get(context.Background(), "user-2", i.ID); err == nil {
		t.Error("another user must not read the session")
	}
	if _, err := svc.Answer(context.Background(), "user-2", i.ID, interview.AnswerQuestionRequest{
		QuestionIndex: 0,
		Answer:        "Hijack.",
	}); err == nil {
		t.Error("another user must not answer")
	}
}
