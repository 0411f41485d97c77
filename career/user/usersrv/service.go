package usersrv

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/Abraxas-365/careerkit/career/user"
	"github.com/Abraxas-365/careerkit/career/user/userauth"
	"github.com/Abraxas-365/careerkit/pkg/errx"
	"github.com/Abraxas-365/careerkit/pkg/fsx"
	"github.com/Abraxas-365/careerkit/pkg/iam/auth"
	"github.com/Abraxas-365/careerkit/pkg/kernel"
	"github.com/Abraxas-365/careerkit/pkg/logx"
)

// Service implements account management and the password-reset flow.
type Service struct {
	repo        user.Repository
	passwords   auth.PasswordService
	tokens      auth.TokenService
	resetTokens *userauth.ResetTokenService
	mailer      user.MailSender
	files       fsx.FileWriter
	appURL      string
}

func NewService(
	repo user.Repository,
	passwords auth.PasswordService,
	tokens auth.TokenService,
	resetTokens *userauth.ResetTokenService,
	mailer user.MailSender,
	files fsx.FileWriter,
	appURL string,
) *Service {
	return &Service{
		repo:        repo,
		passwords:   passwords,
		tokens:      tokens,
		resetTokens: resetTokens,
		mailer:      mailer,
		files:       files,
		appURL:      strings.TrimRight(appURL, "/"),
	}
}

// Register creates an account and returns a signed-in session.
func (s *Service) Register(ctx context.Context, req user.RegisterRequest) (*user.AuthResponse, error) {
	email := kernel.NewEmail(req.Email)

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, user.ErrEmailAlreadyTaken()
	} else {
		var appErr *errx.Error
		if !errors.As(err, &appErr) || appErr.Type != errx.TypeNotFound {
			return nil, err
		}
	}

	hash, err := s.passwords.Hash(req.Password)
	if err != nil {
		return nil, errx.Wrap(err, "failed to hash password", errx.TypeInternal)
	}

	u := &user.User{
		ID:           kernel.NewUserID(uuid.NewString()),
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(req.FullName),
		Locale:       kernel.Locale(req.Locale).Normalize(),
	}
	u.Touch()
	u.CreatedAt = u.UpdatedAt

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return s.authResponse(u)
}

// Login verifies credentials and returns a session. Unknown email and wrong
// password produce the same error.
func (s *Service) Login(ctx context.Context, req user.LoginRequest) (*user.AuthResponse, error) {
	u, err := s.repo.GetByEmail(ctx, kernel.NewEmail(req.Email))
	if err != nil {
		var appErr *errx.Error
		if errors.As(err, &appErr) && appErr.Type == errx.TypeNotFound {
			return nil, user.ErrInvalidCredentials()
		}
		return nil, err
	}

	if !s.passwords.Compare(u.PasswordHash, req.Password) {
		return nil, user.ErrInvalidCredentials()
	}

	return s.authResponse(u)
}

// GetProfile returns the account behind an authenticated session.
func (s *Service) GetProfile(ctx context.Context, id kernel.UserID) (*user.UserResponse, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := user.ToUserResponse(u)
	return &resp, nil
}

// UpdateProfile applies partial profile changes.
func (s *Service) UpdateProfile(ctx context.Context, id kernel.UserID, req user.UpdateProfileRequest) (*user.UserResponse, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		u.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Locale != nil {
		u.Locale = kernel.Locale(*req.Locale).Normalize()
	}
	u.Touch()

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	resp := user.ToUserResponse(u)
	return &resp, nil
}

// UploadPhoto stores a profile photo and records its URL.
func (s *Service) UploadPhoto(ctx context.Context, id kernel.UserID, filename, contentType string, data []byte) (*user.UserResponse, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ext := path.Ext(filename)
	key := fmt.Sprintf("users/%s/photo-%s%s", id, uuid.NewString(), ext)

	url, err := s.files.WriteFile(ctx, key, data, contentType)
	if err != nil {
		return nil, user.ErrRegistry.NewWithCause(user.CodePhotoUploadFailed, err)
	}

	u.PhotoURL = url
	u.Touch()
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	resp := user.ToUserResponse(u)
	return &resp, nil
}

// RequestPasswordReset emails a signed reset link when the address belongs to
// an account. The caller gets the same nil result whether or not the account
// exists, so the endpoint cannot be used to enumerate emails. Mail transport
// failure for a real account is surfaced: the user would otherwise wait for a
// link that never arrives.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.repo.GetByEmail(ctx, kernel.NewEmail(email))
	if err != nil {
		var appErr *errx.Error
		if errors.As(err, &appErr) && appErr.Type == errx.TypeNotFound {
			logx.Infof("password reset requested for unknown email")
			return nil
		}
		return err
	}

	token, err := s.resetTokens.Issue(u.ID)
	if err != nil {
		return errx.Wrap(err, "failed to issue reset token", errx.TypeInternal)
	}

	link := fmt.Sprintf("%s/reset-password/%s", s.appURL, token)
	body := resetMailBody(u.FullName, link, u.Locale)

	if err := s.mailer.SendHTML(u.Email.String(), resetMailSubject(u.Locale), body); err != nil {
		logx.Errorf("failed to send reset email: %v", err)
		return user.ErrRegistry.NewWithCause(user.CodeMailDeliveryFailed, err)
	}

	return nil
}

// ResetPassword validates a reset token and replaces the password.
func (s *Service) ResetPassword(ctx context.Context, req user.ResetPasswordRequest) error {
	if len(req.Password) < 8 {
		return user.ErrPasswordTooShort()
	}

	userID, err := s.resetTokens.Validate(req.Token)
	if err != nil {
		if errors.Is(err, userauth.ErrTokenExpired) {
			return user.ErrResetTokenExpired()
		}
		return user.ErrInvalidResetToken()
	}

	hash, err := s.passwords.Hash(req.Password)
	if err != nil {
		return errx.Wrap(err, "failed to hash password", errx.TypeInternal)
	}

	if err := s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		var appErr *errx.Error
		if errors.As(err, &appErr) && appErr.Type == errx.TypeNotFound {
			// The account behind a valid token is gone; to the caller the
			// link is simply no longer valid.
			return user.ErrInvalidResetToken()
		}
		return err
	}

	return nil
}

func (s *Service) authResponse(u *user.User) (*user.AuthResponse, error) {
	token, err := s.tokens.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		return nil, errx.Wrap(err, "failed to generate access token", errx.TypeInternal)
	}

	return &user.AuthResponse{
		AccessToken: token,
		User:        user.ToUserResponse(u),
	}, nil
}

func resetMailSubject(locale kernel.Locale) string {
	if locale.Normalize() == kernel.LocaleUkrainian {
		return "Відновлення паролю"
	}
	return "Reset your password"
}

func resetMailBody(name, link string, locale kernel.Locale) string {
	if locale.Normalize() == kernel.LocaleUkrainian {
		return fmt.Sprintf(
			`<p>Привіт, %s!</p>
<p>Щоб встановити новий пароль, перейдіть за посиланням протягом години:</p>
<p><a href="%s">%s</a></p>
<p>Якщо ви не запитували відновлення паролю, проігноруйте цей лист.</p>`,
			name, link, link)
	}
	return fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Follow the link below within one hour to set a new password:</p>
<p><a href="%s">%s</a></p>
<p>If you did not request a password reset, you can safely ignore this email.</p>`,
		name, link, link)
}
