package usersrv

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/Abraxas-365/careerkit/career/user"
	"github.com/Abraxas-365/careerkit/career/user/userauth"
	"github.com/Abraxas-365/careerkit/pkg/errx"
	"github.com/Abraxas-365/careerkit/pkg/iam/auth"
	"github.com/Abraxas-365/careerkit/pkg/kernel"
)

type fakeRepo struct {
	users     map[kernel.UserID]*user.User
	byEmail   map[kernel.Email]kernel.UserID
	passwords map[kernel.UserID]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:     make(map[kernel.UserID]*user.User),
		byEmail:   make(map[kernel.Email]kernel.UserID),
		passwords: make(map[kernel.UserID]string),
	}
}

func (r *fakeRepo) Create(_ context.Context, u *user.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return user.ErrEmailAlreadyTaken()
	}
	cp := *u
	r.users[u.ID] = &cp
	r.byEmail[u.Email] = u.ID
	r.passwords[u.ID] = u.PasswordHash
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id kernel.UserID) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound()
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepo) GetByEmail(_ context.Context, email kernel.Email) (*user.User, error) {
	id, ok := r.byEmail[email]
	if !ok {
		return nil, user.ErrUserNotFound()
	}
	return r.GetByID(context.Background(), id)
}

func (r *fakeRepo) Update(_ context.Context, u *user.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return user.ErrUserNotFound()
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdatePassword(_ context.Context, id kernel.UserID, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return user.ErrUserNotFound()
	}
	u.PasswordHash = hash
	r.passwords[id] = hash
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id kernel.UserID) error {
	u, ok := r.users[id]
	if !ok {
		return user.ErrUserNotFound()
	}
	delete(r.byEmail, u.Email)
	delete(r.users, id)
	return nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendHTML(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

type fakePasswords struct{}

func (fakePasswords) Hash(password string) (string, error) { return "hash:" + password, nil }
func (fakePasswords) Compare(hash, password string) bool   { return hash == "hash:"+password }

type fakeFiles struct {
	lastPath string
}

func (f *fakeFiles) WriteFile(_ context.Context, path string, _ []byte, _ string) (string, error) {
	f.lastPath = path
	return "https://bucket.s3.amazonaws.com/" + path, nil
}

func (f *fakeFiles) DeleteFile(context.Context, string) error { return nil }

func newTestService(repo *fakeRepo, mailer *fakeMailer) (*Service, *userauth.ResetTokenService) {
	resetTokens := userauth.NewResetTokenService("test-secret")
	svc := NewService(repo, fakePasswords{}, tokenStub{}, resetTokens, mailer, &fakeFiles{}, "https://app.example.com/")
	return svc, resetTokens
}

type tokenStub struct{}

func (tokenStub) GenerateAccessToken(userID kernel.UserID, _ kernel.Email) (string, error) {
	return "jwt-" + userID.String(), nil
}

func (tokenStub) ValidateAccessToken(string) (*auth.TokenClaims, error) {
	return nil, errors.New("not implemented")
}

func seedUser(t *testing.T, repo *fakeRepo, email string) *user.User {
	t.Helper()
	u := &user.User{
		ID:           kernel.NewUserID("user-1"),
		Email:        kernel.NewEmail(email),
		PasswordHash: "hash:old-password",
		FullName:     "Olena Petrenko",
		Locale:       kernel.LocaleUkrainian,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

var linkPattern = regexp.MustCompile(`reset-password/([A-Za-z0-9_-]+\.[A-Za-z0-9_-]+)`)

func TestRequestPasswordResetUnknownEmailIsSilent(t *testing.T) {
	repo := newFakeRepo()
	mailer := &fakeMailer{}
	svc, _ := newTestService(repo, mailer)

	if err := svc.RequestPasswordReset(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("unknown email must not error, got %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Errorf("no mail should be sent for unknown email, got %d", len(mailer.sent))
	}
}

func TestRequestPasswordResetSendsSignedLink(t *testing.T) {
	repo := newFakeRepo()
	mailer := &fakeMailer{}
	svc, resetTokens := newTestService(repo, mailer)
	seedUser(t, repo, "olena@example.com")

	if err := svc.RequestPasswordReset(context.Background(), "Olena@Example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected one mail, got %d", len(mailer.sent))
	}
	if mailer.sent[0].to != "olena@example.com" {
		t.Errorf("mail went to %s", mailer.sent[0].to)
	}
	if !strings.Contains(mailer.sent[0].body, "https://app.example.com/reset-password/") {
		t.Errorf("mail body missing reset link: %s", mailer.sent[0].body)
	}

	m := linkPattern.FindStringSubmatch(mailer.sent[0].body)
	if m == nil {
		t.Fatalf("no token in mail body: %s", mailer.sent[0].body)
	}
	userID, err := resetTokens.Validate(m[1])
	if err != nil {
		t.Fatalf("mailed token does not validate: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("token is for %s", userID)
	}
}

func TestRequestPasswordResetMailFailureIsSurfaced(t *testing.T) {
	repo := newFakeRepo()
	mailer := &fakeMailer{err: errors.New("smtp: connection refused")}
	svc, _ := newTestService(repo, mailer)
	seedUser(t, repo, "olena@example.com")

	err := svc.RequestPasswordReset(context.Background(), "olena@example.com")
	if err == nil {
		t.Fatal("mail failure for an existing account must be reported")
	}
	var appErr *errx.Error
	if !errors.As(err, &appErr) || appErr.Type != errx.TypeInternal {
		t.Errorf("expected internal error, got %v", err)
	}
}

func TestResetPasswordEndToEnd(t *testing.T) {
	repo := newFakeRepo()
	mailer := &fakeMailer{}
	svc, resetTokens := newTestService(repo, mailer)
	seedUser(t, repo, "olena@example.com")

	if err := svc.RequestPasswordReset(context.Background(), "olena@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	token := linkPattern.FindStringSubmatch(mailer.sent[0].body)[1]

	err := svc.ResetPassword(context.Background(), user.ResetPasswordRequest{
		Token:    token,
		Password: "new-password-123",
	})
	if err != nil {
		t.Fatalf("reset password: %v", err)
	}
	if repo.passwords["user-1"] != "hash:new-password-123" {
		t.Errorf("password hash not updated: %s", repo.passwords["user-1"])
	}

	// Expired token is reported as expired, not merely invalid.
	resetTokens.Now = func() time.Time { return time.Now().Add(61 * time.Minute) }
	err = svc.ResetPassword(context.Background(), user.ResetPasswordRequest{
		Token:    token,
		Password: "another-password",
	})
	var appErr *errx.Error
	if !errors.As(err, &appErr) || appErr.Code != "USER_RESET_TOKEN_EXPIRED" {
		t.Errorf("expected USER_RESET_TOKEN_EXPIRED, got %v", err)
	}
}

func TestResetPasswordRejectsGarbageToken(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo, &fakeMailer{})

	err := svc.ResetPassword(context.Background(), user.ResetPasswordRequest{
		Token:    "not-a-token",
		Password: "new-password-123",
	})
	var appErr *errx.Error
	if !errors.As(err, &appErr) || appErr.Code != "USER_INVALID_RESET_TOKEN" {
		t.Errorf("expected USER_INVALID_RESET_TOKEN, got %v", err)
	}
}

func TestResetPasswordRejectsShortPassword(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo, &fakeMailer{})

	err := svc.ResetPassword(context.Background(), user.ResetPasswordRequest{
		Token:    "irrelevant",
		Password: "short",
	})
	var appErr *errx.Error
	if !errors.As(err, &appErr) || appErr.Code != "USER_PASSWORD_TOO_SHORT" {
		t.Errorf("expected USER_PASSWORD_TOO_SHORT, got %v", err)
	}
}

func TestResetPasswordForDeletedAccount(t *testing.T) {
	repo := newFakeRepo()
	mailer := &fakeMailer{}
	svc, _ := newTestService(repo, mailer)
	seedUser(t, repo, "olena@example.com")

	if err := svc.RequestPasswordReset(context.Background(), "olena@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	token := linkPattern.FindStringSubmatch(mailer.sent[0].body)[1]

	if err := repo.Delete(context.Background(), "user-1"); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	err := svc.ResetPassword(context.Background(), user.ResetPasswordRequest{
		Token:    token,
		Password: "new-password-123",
	})
	var appErr *errx.Error
	if !errors.As(err, &appErr) || appErr.Code != "USER_INVALID_RESET_TOKEN" {
		t.Errorf("expected USER_INVALID_RESET_TOKEN, got %v", err)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo, &fakeMailer{})

	resp, err := svc.Register(context.Background(), user.RegisterRequest{
		Email:    "Taras@Example.com",
		Password: "password-123",
		FullName: "Taras Koval",
		Locale:   "uk",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.User.Email != "taras@example.com" {
		t.Errorf("email not normalized: %s", resp.User.Email)
	}
	if resp.AccessToken == "" {
		t.Error("missing access token")
	}

	if _, err := svc.Register(context.Background(), user.RegisterRequest{
		Email:    "taras@example.com",
		Password: "password-123",
		FullName: "Taras Koval",
	}); err == nil {
		t.Error("duplicate registration should fail")
	}

	if _, err := svc.Login(context.Background(), user.LoginRequest{
		Email:    "taras@example.com",
		Password: "password-123",
	}); err != nil {
		t.Errorf("login: %v", err)
	}

	_, err = svc.Login(context.Background(), user.LoginRequest{
		Email:    "taras@example.com",
		Password: "wrong",
	})
	var appErr *errx.Error
	if !errors.As(err, &appErr) || appErr.Code != "USER_INVALID_CREDENTIALS" {
		t.Errorf("expected USER_INVALID_CREDENTIALS, got %v", err)
	}

	_, err = svc.Login(context.Background(), user.LoginRequest{
		Email:    "stranger@example.com",
		Password: "password-123",
	})
	if !errors.As(err, &appErr) || appErr.Code != "USER_INVALID_CREDENTIALS" {
		t.Errorf("unknown email should look like bad credentials, got %v", err)
	}
}
