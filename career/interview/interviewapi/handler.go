package interviewapi

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/careerkit/career/interview"
	"github.com/Abraxas-365/careerkit/career/interview/interviewsrv"
	"github.com/Abraxas-365/careerkit/pkg/iam/auth"
	"github.com/Abraxas-365/careerkit/pkg/kernel"
)

var validate = validator.New()

// Handlers provides HTTP handlers for interview practice sessions
type Handlers struct {
	service *interviewsrv.Service
}

func NewHandlers(service *interviewsrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// CreateInterview starts a session with AI-generated questions
// POST /api/interviews
func (h *Handlers) CreateInterview(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req interview.CreateInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return interview.ErrInvalidInterviewData().WithDetail("parse_error", err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return interview.ErrInvalidInterviewData().WithDetail("validation", err.Error())
	}

	i, err := h.service.Create(c.Context(), authContext.UserID, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(i)
}

// AnswerQuestion submits one answer for AI evaluation
// POST /api/interviews/:id/answers
func (h *Handlers) AnswerQuestion(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	id := kernel.InterviewID(c.Params("id"))
	if id.IsEmpty() {
		return interview.ErrInterviewNotFound()
	}

	var req interview.AnswerQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return interview.ErrInvalidInterviewData().WithDetail("parse_error", err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return interview.ErrInvalidInterviewData().WithDetail("validation", err.Error())
	}

	i, err := h.service.Answer(c.Context(), authContext.UserID, id, req)
	if err != nil {
		return err
	}

	return c.JSON(i)
}

// GetInterview retrieves one session
// GET /api/interviews/:id
func (h *Handlers) GetInterview(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	id := kernel.InterviewID(c.Params("id"))
	if id.IsEmpty() {
		return interview.ErrInterviewNotFound()
	}

	i, err := h.service.Get(c.Context(), authContext.UserID, id)
	if err != nil {
		return err
	}

	return c.JSON(i)
}

// ListInterviews retrieves the user's sessions with pagination
// GET /api/interviews
func (h *Handlers) ListInterviews(c *fiber.Ctx) error {
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

// DeleteInterview removes a session
// DELETE /api/interviews/:id
func (h *Handlers) DeleteInterview(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	id := kernel.InterviewID(c.Params("id"))
	if id.IsEmpty() {
		return interview.ErrInterviewNotFound()
	}

	if err := h.service.Delete(c.Context(), authContext.UserID, id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterRoutes wires interview endpoints into the app
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	interviews := app.Group("/api/interviews", authMiddleware.Authenticate())

	interviews.Post("/", handlers.CreateInterview)
	interviews.Get("/", handlers.ListInterviews)
	interviews.Get("/:id", handlers.GetInterview)
	interviews.Post("/:id/answers", handlers.AnswerQuestion)
	interviews.Delete("/:id", handlers.DeleteInterview)
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
