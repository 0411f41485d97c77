package letterapi

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/careerkit/career/letter"
	"github.com/Abraxas-365/careerkit/career/letter/lettersrv"
	"github.com/Abraxas-365/careerkit/pkg/iam/auth"
	"github.com/Abraxas-365/careerkit/pkg/kernel"
)

var validate = validator.New()

// Handlers provides HTTP handlers for cover letter operations
type Handlers struct {
	service *lettersrv.Service
}

func NewHandlers(service *lettersrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// CreateLetter creates a new letter
// POST /api/letters
func (h *Handlers) CreateLetter(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req letter.CreateLetterRequest
	if err := c.BodyParser(&req); err != nil {
		return letter.ErrInvalidLetterData().WithDetail("parse_error", err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return letter.ErrInvalidLetterData().WithDetail("validation", err.Error())
	}

	l, err := h.service.Create(c.Context(), authContext.UserID, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(l)
}

// GenerateLetter drafts a letter with AI
// POST /api/letters/generate
func (h *Handlers) GenerateLetter(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req letter.GenerateLetterRequest
	if err := c.BodyParser(&req); err != nil {
		return letter.ErrInvalidLetterData().WithDetail("parse_error", err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return letter.ErrInvalidLetterData().WithDetail("validation", err.Error())
	}

	resp, err := h.service.Generate(c.Context(), authContext.UserID, req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// GetLetter retrieves one letter
// GET /api/letters/:id
func (h *Handlers) GetLetter(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	id := kernel.LetterID(c.Params("id"))
	if id.IsEmpty() {
		return letter.ErrLetterNotFound()
	}

	l, err := h.service.Get(c.Context(), authContext.UserID, id)
	if err != nil {
		return err
	}

	return c.JSON(l)
}

// ListLetters retrieves the user's letters with pagination
// GET /api/letters
func (h *Handlers) ListLetters(c *fiber.Ctx) error {
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

// UpdateLetter applies partial changes
// PATCH /api/letters/:id
func (h *Handlers) UpdateLetter(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	id := kernel.LetterID(c.Params("id"))
	if id.IsEmpty() {
		return letter.ErrLetterNotFound()
	}

	var req letter.UpdateLetterRequest
	if err := c.BodyParser(&req); err != nil {
		return letter.ErrInvalidLetterData().WithDetail("parse_error", err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return letter.ErrInvalidLetterData().WithDetail("validation", err.Error())
	}

	l, err := h.service.Update(c.Context(), authContext.UserID, id, req)
	if err != nil {
		return err
	}

	return c.JSON(l)
}

// DeleteLetter removes a letter
// DELETE /api/letters/:id
func (h *Handlers) DeleteLetter(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	id := kernel.LetterID(c.Params("id"))
	if id.IsEmpty() {
		return letter.ErrLetterNotFound()
	}

	if err := h.service.Delete(c.Context(), authContext.UserID, id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterRoutes wires letter endpoints into the app
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	letters := app.Group("/api/letters", authMiddleware.Authenticate())

	letters.Post("/", handlers.CreateLetter)
	letters.Post("/generate", handlers.GenerateLetter)
	letters.Get("/", handlers.ListLetters)
	letters.Get("/:id", handlers.GetLetter)
	letters.Patch("/:id", handlers.UpdateLetter)
	letters.Delete("/:id", handlers.DeleteLetter)
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
