package resumeapi

import (
	"io"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/careerkit/career/resume"
	"github.com/Abraxas-365/careerkit/career/resume/resumesrv"
	"github.com/Abraxas-365/careerkit/pkg/iam/auth"
	"github.com/Abraxas-365/careerkit/pkg/kernel"
)

const maxPhotoSize = 5 << 20 // 5 MiB

var validate = validator.New()

// Handlers provides HTTP handlers for resume operations
type Handlers struct {
	service *resumesrv.Service
}

func NewHandlers(service *resumesrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// CreateResume creates a new resume
// POST /api/resumes
func (h *Handlers) CreateResume(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req resume.CreateResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return resume.ErrInvalidResumeData().WithDetail("parse_error", err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return resume.ErrInvalidResumeData().WithDetail("validation", err.Error())
	}

	r, err := h.service.Create(c.Context(), authContext.UserID, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(r)
}

// GetResume retrieves one resume
// GET /api/resumes/:id
func (h *Handlers) GetResume(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	id := kernel.ResumeID(c.Params("id"))
	if id.IsEmpty() {
		return resume.ErrResumeNotFound()
	}

	r, err := h.service.Get(c.Context(), authContext.UserID, id)
	if err != nil {
		return err
	}

	return c.JSON(r)
}

// ListResumes retrieves the user's resumes with pagination
// GET /api/resumes
func (h *Handlers) ListResumes(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	page, err := h.service.List(c.Context(), authContext.UserID, parsePaginationOptions(c))
	if err != nil {
		return err
	}

	return c.JSON(page)
}

// UpdateResume applies partial changes
// PATCH /api/resumes/:id
func (h *Handlers) UpdateResume(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	id := kernel.ResumeID(c.Params("id"))
	if id.IsEmpty() {
		return resume.ErrResumeNotFound()
	}

	var req resume.UpdateResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return resume.ErrInvalidResumeData().WithDetail("parse_error", err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return resume.ErrInvalidResumeData().WithDetail("validation", err.Error())
	}

	r, err := h.service.Update(c.Context(), authContext.UserID, id, req)
	if err != nil {
		return err
	}

	return c.JSON(r)
}

// SetDefaultResume marks one resume as the default
// POST /api/resumes/:id/default
func (h *Handlers) SetDefaultResume(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	id := kernel.ResumeID(c.Params("id"))
	if id.IsEmpty() {
		return resume.ErrResumeNotFound()
	}

	if err := h.service.SetDefault(c.Context(), authContext.UserID, id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteResume removes a resume
// DELETE /api/resumes/:id
func (h *Handlers) DeleteResume(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	id := kernel.ResumeID(c.Params("id"))
	if id.IsEmpty() {
		return resume.ErrResumeNotFound()
	}

	if err := h.service.Delete(c.Context(), authContext.UserID, id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// UploadResumePhoto stores a resume photo
// POST /api/resumes/:id/photo
func (h *Handlers) UploadResumePhoto(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	id := kernel.ResumeID(c.Params("id"))
	if id.IsEmpty() {
		return resume.ErrResumeNotFound()
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return resume.ErrInvalidResumeData().WithDetail("photo", "missing file field")
	}
	if fileHeader.Size > maxPhotoSize {
		return resume.ErrInvalidResumeData().WithDetail("photo", "file exceeds 5MB limit")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return resume.ErrInvalidResumeData().WithDetail("photo", err.Error())
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return resume.ErrInvalidResumeData().WithDetail("photo", err.Error())
	}

	contentType := fileHeader.Header.Get("Content-Type")
	r, err := h.service.UploadPhoto(c.Context(), authContext.UserID, id, fileHeader.Filename, contentType, data)
	if err != nil {
		return err
	}

	return c.JSON(r)
}

// RegisterRoutes wires resume endpoints into the app
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	resumes := app.Group("/api/resumes", authMiddleware.Authenticate())

	resumes.Post("/", handlers.CreateResume)
	resumes.Get("/", handlers.ListResumes)
	resumes.Get("/:id", handlers.GetResume)
	resumes.Patch("/:id", handlers.UpdateResume)
	resumes.Delete("/:id", handlers.DeleteResume)
	resumes.Post("/:id/default", handlers.SetDefaultResume)
	resumes.Post("/:id/photo", handlers.UploadResumePhoto)
}

func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return kernel.PaginationOptions{Page: page, PageSize: pageSize}
}
