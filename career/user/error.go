package user

import (
	"net/http"

	"github.com/Abraxas-365/careerkit/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("USER")

// Error codes - Account Operations
var (
	CodeUserNotFound       = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "User not found")
	CodeEmailAlreadyTaken  = ErrRegistry.Register("EMAIL_TAKEN", errx.TypeConflict, http.StatusConflict, "Email is already registered")
	CodeInvalidCredentials = ErrRegistry.Register("INVALID_CREDENTIALS", errx.TypeAuthentication, http.StatusUnauthorized, "Invalid email or password")
	CodeInvalidUserData    = ErrRegistry.Register("INVALID_DATA", errx.TypeValidation, http.StatusBadRequest, "Invalid user data")
	CodePasswordTooShort   = ErrRegistry.Register("PASSWORD_TOO_SHORT", errx.TypeValidation, http.StatusBadRequest, "Password must be at least 8 characters")
	CodePhotoUploadFailed  = ErrRegistry.Register("PHOTO_UPLOAD_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to upload photo")
)

// Error codes - Password Reset
var (
	CodeInvalidResetToken  = ErrRegistry.Register("INVALID_RESET_TOKEN", errx.TypeValidation, http.StatusBadRequest, "Invalid reset link")
	CodeResetTokenExpired  = ErrRegistry.Register("RESET_TOKEN_EXPIRED", errx.TypeValidation, http.StatusBadRequest, "Reset link has expired")
	CodeMailDeliveryFailed = ErrRegistry.Register("MAIL_DELIVERY_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to send email")
)

// Helper functions - Account Operations
func ErrUserNotFound() *errx.Error {
	return ErrRegistry.New(CodeUserNotFound)
}

func ErrEmailAlreadyTaken() *errx.Error {
	return ErrRegistry.New(CodeEmailAlreadyTaken)
}

func ErrInvalidCredentials() *errx.Error {
	return ErrRegistry.New(CodeInvalidCredentials)
}

func ErrInvalidUserData() *errx.Error {
	return ErrRegistry.New(CodeInvalidUserData)
}

func ErrPasswordTooShort() *errx.Error {
	return ErrRegistry.New(CodePasswordTooShort)
}

func ErrPhotoUploadFailed() *errx.Error {
	return ErrRegistry.New(CodePhotoUploadFailed)
}

// Helper functions - Password Reset
func ErrInvalidResetToken() *errx.Error {
	return ErrRegistry.New(CodeInvalidResetToken)
}

func ErrResetTokenExpired() *errx.Error {
	return ErrRegistry.New(CodeResetTokenExpired)
}

func ErrMailDeliveryFailed() *errx.Error {
	return ErrRegistry.New(CodeMailDeliveryFailed)
}
