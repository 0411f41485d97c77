package userapi

import (
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/careerkit/career/user"
	"github.com/Abraxas-365/careerkit/career/user/usersrv"
	"github.com/Abraxas-365/careerkit/pkg/iam/auth"
)

const maxPhotoSize = 5 << 20 // 5 MiB

var validate = validator.New()

// Handlers provides HTTP handlers for auth and profile operations
type Handlers struct {
	service *usersrv.Service
}

func NewHandlers(service *usersrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Register creates a new account
// POST /api/auth/register
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req user.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrInvalidUserData().WithDetail("parse_error", err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return user.ErrInvalidUserData().WithDetail("validation", err.Error())
	}

	resp, err := h.service.Register(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login exchanges credentials for an access token
// POST /api/auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req user.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrInvalidUserData().WithDetail("parse_error", err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return user.ErrInvalidUserData().WithDetail("validation", err.Error())
	}

	resp, err := h.service.Login(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// Me returns the authenticated user's profile
// GET /api/auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	resp, err := h.service.GetProfile(c.Context(), authContext.UserID)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// UpdateProfile applies partial profile changes
// PATCH /api/auth/me
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req user.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrInvalidUserData().WithDetail("parse_error", err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return user.ErrInvalidUserData().WithDetail("validation", err.Error())
	}

	resp, err := h.service.UpdateProfile(c.Context(), authContext.UserID, req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// UploadPhoto stores a profile photo
// POST /api/auth/me/photo
func (h *Handlers) UploadPhoto(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return user.ErrInvalidUserData().WithDetail("photo", "missing file field")
	}
	if fileHeader.Size > maxPhotoSize {
		return user.ErrInvalidUserData().WithDetail("photo", "file exceeds 5MB limit")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return user.ErrInvalidUserData().WithDetail("photo", err.Error())
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return user.ErrInvalidUserData().WithDetail("photo", err.Error())
	}

	contentType := fileHeader.Header.Get("Content-Type")
	resp, err := h.service.UploadPhoto(c.Context(), authContext.UserID, fileHeader.Filename, contentType, data)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// ForgotPassword emails a reset link. The response is identical whether or
// not the address belongs to an account.
// POST /api/auth/forgot-password
func (h *Handlers) ForgotPassword(c *fiber.Ctx) error {
	var req user.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrInvalidUserData().WithDetail("parse_error", err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return user.ErrInvalidUserData().WithDetail("validation", err.Error())
	}

	if err := h.service.RequestPasswordReset(c.Context(), req.Email); err != nil {
		return err
	}

	return c.JSON(user.MessageResponse{
		Message: "If that email is registered, a reset link is on its way",
	})
}

// ResetPassword sets a new password from a reset token
// POST /api/auth/reset-password
func (h *Handlers) ResetPassword(c *fiber.Ctx) error {
	var req user.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrInvalidUserData().WithDetail("parse_error", err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return user.ErrInvalidUserData().WithDetail("validation", err.Error())
	}

	if err := h.service.ResetPassword(c.Context(), req); err != nil {
		return err
	}

	return c.JSON(user.MessageResponse{Message: "Password has been reset"})
}

// RegisterRoutes wires auth and profile endpoints into the app
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	authGroup := app.Group("/api/auth")

	authGroup.Post("/register", handlers.Register)
	authGroup.Post("/login", handlers.Login)
	authGroup.Post("/forgot-password", handlers.ForgotPassword)
	authGroup.Post("/reset-password", handlers.ResetPassword)

	me := authGroup.Group("/me", authMiddleware.Authenticate())
	me.Get("/", handlers.Me)
	me.Patch("/", handlers.UpdateProfile)
	me.Post("/photo", handlers.UploadPhoto)
}
