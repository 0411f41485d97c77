package resumesrv

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Abraxas-365/careerkit/career/resume"
	"github.com/Abraxas-365/careerkit/pkg/errx"
	"github.com/Abraxas-365/careerkit/pkg/kernel"
)

type fakeRepo struct {
	resumes    map[kernel.ResumeID]*resume.Resume
	embeddings map[kernel.ResumeID][]float32
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		resumes:    make(map[kernel.ResumeID]*resume.Resume),
		embeddings: make(map[kernel.ResumeID][]float32),
	}
}

func (r *fakeRepo) Create(_ context.Context, rm *resume.Resume) error {
	// Mirrors the table's partial unique index: one default row per user.
	if rm.IsDefault {
		for _, existing := range r.resumes {
			if existing.UserID == rm.UserID && existing.IsDefault {
				return errx.Wrap(errors.New(`duplicate key value violates unique constraint "idx_resumes_one_default"`),
					"failed to create resume", errx.TypeInternal)
			}
		}
	}
	cp := *rm
	r.resumes[rm.ID] = &cp
	return nil
}

func (r *fakeRepo) Update(_ context.Context, rm *resume.Resume) error {
	if _, ok := r.resumes[rm.ID]; !ok {
		return resume.ErrResumeNotFound()
	}
	cp := *rm
	r.resumes[rm.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id kernel.ResumeID) (*resume.Resume, error) {
	rm, ok := r.resumes[id]
	if !ok {
		return nil, resume.ErrResumeNotFound()
	}
	cp := *rm
	return &cp, nil
}

func (r *fakeRepo) ListByUser(_ context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[resume.Resume], error) {
	var items []resume.Resume
	for _, rm := range r.resumes {
		if rm.UserID == userID {
			items = append(items, *rm)
		}
	}
	return kernel.NewPaginated(items, pagination, len(items)), nil
}

func (r *fakeRepo) CountByUser(_ context.Context, userID kernel.UserID) (int64, error) {
	var count int64
	for _, rm := range r.resumes {
		if rm.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeRepo) GetDefaultByUser(_ context.Context, userID kernel.UserID) (*resume.Resume, error) {
	for _, rm := range r.resumes {
		if rm.UserID == userID && rm.IsDefault {
			cp := *rm
			return &cp, nil
		}
	}
	return nil, resume.ErrResumeNotFound()
}

func (r *fakeRepo) SetDefault(_ context.Context, id kernel.ResumeID, userID kernel.UserID) error {
	target, ok := r.resumes[id]
	if !ok || target.UserID != userID {
		return resume.ErrResumeNotFound()
	}
	for _, rm := range r.resumes {
		if rm.UserID == userID {
			rm.IsDefault = rm.ID == id
		}
	}
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id kernel.ResumeID) error {
	if _, ok := r.resumes[id]; !ok {
		return resume.ErrResumeNotFound()
	}
	delete(r.resumes, id)
	return nil
}

func (r *fakeRepo) UpdateEmbedding(_ context.Context, id kernel.ResumeID, embedding []float32) error {
	r.embeddings[id] = embedding
	return nil
}

func (r *fakeRepo) MostSimilar(_ context.Context, userID kernel.UserID, _ []float32) (*resume.Resume, error) {
	for id := range r.embeddings {
		if rm, ok := r.resumes[id]; ok && rm.UserID == userID {
			cp := *rm
			return &cp, nil
		}
	}
	return nil, resume.ErrResumeNotFound()
}

type fakeEmbedder struct {
	calls int
	err   error
}

func (e *fakeEmbedder) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return []float32{float32(len(text))}, nil
}

type fakeFiles struct{}

func (fakeFiles) WriteFile(_ context.Context, path string, _ []byte, _ string) (string, error) {
	return "https://bucket.s3.amazonaws.com/" + path, nil
}

func (fakeFiles) DeleteFile(context.Context, string) error { return nil }

func createRequest(title string) resume.CreateResumeRequest {
	return resume.CreateResumeRequest{
		Title: title,
		PersonalInfo: resume.PersonalInfo{
			FullName: "Olena Petrenko",
			Email:    "olena@example.com",
		},
		Skills: []string{"Go", "PostgreSQL"},
	}
}

func TestCreateFirstResumeBecomesDefault(t *testing.T) {
	repo := newFakeRepo()
	embedder := &fakeEmbedder{}
	svc := NewService(repo, embedder, fakeFiles{})

	first, err := svc.Create(context.Background(), "user-1", createRequest("Backend Engineer"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !first.IsDefault {
		t.Error("first resume should be the default")
	}

	second, err := svc.Create(context.Background(), "user-1", createRequest("Data Engineer"))
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if second.IsDefault {
		t.Error("second resume should not steal the default")
	}

	if embedder.calls != 2 {
		t.Errorf("expected an embedding per create, got %d calls", embedder.calls)
	}
	if _, ok := repo.embeddings[first.ID]; !ok {
		t.Error("embedding not stored for first resume")
	}
}

func TestCreateFlaggedDefaultReplacesExistingDefault(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeEmbedder{}, fakeFiles{})

	first, err := svc.Create(context.Background(), "user-1", createRequest("First"))
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	if !first.IsDefault {
		t.Fatal("first resume should start as the default")
	}

	req := createRequest("Second")
	req.IsDefault = true
	second, err := svc.Create(context.Background(), "user-1", req)
	if err != nil {
		t.Fatalf("creating a second resume flagged default must switch the default, got: %v", err)
	}
	if !second.IsDefault {
		t.Error("returned resume should carry the default flag")
	}

	got, err := repo.GetDefaultByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("get default: %v", err)
	}
	if got.ID != second.ID {
		t.Errorf("default is %s, want %s", got.ID, second.ID)
	}
	old, _ := repo.GetByID(context.Background(), first.ID)
	if old.IsDefault {
		t.Error("previous default not unset")
	}
}

func TestCreateEnforcesPerUserCap(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeEmbedder{}, fakeFiles{})

	for i := 0; i < resume.MaxPerUser; i++ {
		if _, err := svc.Create(context.Background(), "user-1", createRequest(fmt.Sprintf("Resume %d", i))); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	_, err := svc.Create(context.Background(), "user-1", createRequest("One too many"))
	var appErr *errx.Error
	if !errors.As(err, &appErr) || appErr.Code != "RESUME_MAX_RESUMES_EXCEEDED" {
		t.Errorf("expected RESUME_MAX_RESUMES_EXCEEDED, got %v", err)
	}

	// Another user is unaffected by the first user's cap.
	if _, err := svc.Create(context.Background(), "user-2", createRequest("Fresh start")); err != nil {
		t.Errorf("other user's create failed: %v", err)
	}
}

func TestUpdateRefreshesEmbeddingOnContentChange(t *testing.T) {
	repo := newFakeRepo()
	embedder := &fakeEmbedder{}
	svc := NewService(repo, embedder, fakeFiles{})

	r, err := svc.Create(context.Background(), "user-1", createRequest("Backend Engineer"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	embedder.calls = 0

	summary := "Ten years of distributed systems."
	if _, err := svc.Update(context.Background(), "user-1", r.ID, resume.UpdateResumeRequest{
		Summary: &summary,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if embedder.calls != 1 {
		t.Errorf("content change should refresh the embedding, got %d calls", embedder.calls)
	}

	// A photo upload does not touch resume content.
	if _, err := svc.UploadPhoto(context.Background(), "user-1", r.ID, "me.png", "image/png", []byte{1}); err != nil {
		t.Fatalf("upload photo: %v", err)
	}
	if embedder.calls != 1 {
		t.Errorf("photo upload should not refresh the embedding, got %d calls", embedder.calls)
	}
}

func TestEmbeddingFailureDoesNotFailCreate(t *testing.T) {
	repo := newFakeRepo()
	embedder := &fakeEmbedder{err: errors.New("model overloaded")}
	svc := NewService(repo, embedder, fakeFiles{})

	r, err := svc.Create(context.Background(), "user-1", createRequest("Backend Engineer"))
	if err != nil {
		t.Fatalf("create should survive embedding failure: %v", err)
	}
	if _, ok := repo.embeddings[r.ID]; ok {
		t.Error("no embedding should be stored on failure")
	}
}

func TestOwnershipScoping(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeEmbedder{}, fakeFiles{})

	r, err := svc.Create(context.Background(), "user-1", createRequest("Backend Engineer"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Get(context.Background(), "user-2", r.ID); err == nil {
		t.Error("another user must not read the resume")
	}
	if err := svc.Delete(context.Background(), "user-2", r.ID); err == nil {
		t.Error("another user must not delete the resume")
	}
	title := "Hijacked"
	if _, err := svc.Update(context.Background(), "user-2", r.ID, resume.UpdateResumeRequest{Title: &title}); err == nil {
		t.Error("another user must not update the resume")
	}

	if _, err := svc.Get(context.Background(), "user-1", r.ID); err != nil {
		t.Errorf("owner read failed: %v", err)
	}
}

func TestSetDefaultSwitchesFlag(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeEmbedder{}, fakeFiles{})

	first, _ := svc.Create(context.Background(), "user-1", createRequest("First"))
	second, _ := svc.Create(context.Background(), "user-1", createRequest("Second"))

	if err := svc.SetDefault(context.Background(), "user-1", second.ID); err != nil {
		t.Fatalf("set default: %v", err)
	}

	got, _ := repo.GetDefaultByUser(context.Background(), "user-1")
	if got.ID != second.ID {
		t.Errorf("default is %s, want %s", got.ID, second.ID)
	}
	old, _ := repo.GetByID(context.Background(), first.ID)
	if old.IsDefault {
		t.Error("previous default not unset")
	}
}
