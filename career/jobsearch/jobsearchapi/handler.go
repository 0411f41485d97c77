package jobsearchapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/careerkit/career/jobsearch"
	"github.com/Abraxas-365/careerkit/career/jobsearch/jobsearchsrv"
	"github.com/Abraxas-365/careerkit/pkg/iam/auth"
)

var validate = validator.New()

// Handlers provides HTTP handlers for job board searches
type Handlers struct {
	service *jobsearchsrv.Service
}

func NewHandlers(service *jobsearchsrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// SearchDOU scrapes jobs.dou.ua
// POST /api/jobs/dou
func (h *Handlers) SearchDOU(c *fiber.Ctx) error {
	return h.search(c, jobsearch.SourceDOU)
}

// SearchLinkedIn scrapes the public LinkedIn job search
// POST /api/jobs/linkedin
func (h *Handlers) SearchLinkedIn(c *fiber.Ctx) error {
	return h.search(c, jobsearch.SourceLinkedIn)
}

func (h *Handlers) search(c *fiber.Ctx, source jobsearch.Source) error {
	if _, ok := auth.GetAuthContext(c); !ok {
		return fiber.ErrUnauthorized
	}

	var req jobsearch.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return jobsearch.ErrInvalidQuery().WithDetail("parse_error", err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return jobsearch.ErrInvalidQuery().WithDetail("validation", err.Error())
	}

	resp, err := h.service.Search(c.Context(), source, req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// RegisterRoutes wires job search endpoints into the app
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	jobs := app.Group("/api/jobs", authMiddleware.Authenticate())

	jobs.Post("/dou", handlers.SearchDOU)
	jobs.Post("/linkedin", handlers.SearchLinkedIn)
}
