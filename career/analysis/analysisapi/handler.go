package analysisapi

import (
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Abraxas-365/careerkit/career/analysis"
	"github.com/Abraxas-365/careerkit/career/analysis/analysissrv"
	"github.com/Abraxas-365/careerkit/pkg/iam/auth"
	"github.com/Abraxas-365/careerkit/pkg/kernel"
)

const maxPDFSize = 10 << 20 // 10 MiB

var validate = validator.New()

// Handlers provides HTTP handlers for CV analysis
type Handlers struct {
	service *analysissrv.Service
}

func NewHandlers(service *analysissrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Analyze runs a CV-vs-job-description evaluation. Accepts JSON
// (job_description + optional resume_id) or multipart form data with a "cv"
// PDF upload.
// POST /api/analyses
func (h *Handlers) Analyze(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	req, err := parseAnalyzeRequest(c)
	if err != nil {
		return err
	}
	if err := validate.Struct(req); err != nil {
		return analysis.ErrInvalidAnalysisData().WithDetail("validation", err.Error())
	}

	a, err := h.service.Analyze(c.Context(), authContext.UserID, *req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(a)
}

// GetAnalysis retrieves one analysis
// GET /api/analyses/:id
func (h *Handlers) GetAnalysis(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	id := kernel.AnalysisID(c.Params("id"))
	if id.IsEmpty() {
		return analysis.ErrAnalysisNotFound()
	}

	a, err := h.service.Get(c.Context(), authContext.UserID, id)
	if err != nil {
		return err
	}

	return c.JSON(a)
}

// ListAnalyses retrieves the user's analysis history with pagination
// GET /api/analyses
func (h *Handlers) ListAnalyses(c *fiber.Ctx) error {
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

// DeleteAnalysis removes an analysis
// DELETE /api/analyses/:id
func (h *Handlers) DeleteAnalysis(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	id := kernel.AnalysisID(c.Params("id"))
	if id.IsEmpty() {
		return analysis.ErrAnalysisNotFound()
	}

	if err := h.service.Delete(c.Context(), authContext.UserID, id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterRoutes wires analysis endpoints into the app
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	analyses := app.Group("/api/analyses", authMiddleware.Authenticate())

	analyses.Post("/", handlers.Analyze)
	analyses.Get("/", handlers.ListAnalyses)
	analyses.Get("/:id", handlers.GetAnalysis)
	analyses.Delete("/:id", handlers.DeleteAnalysis)
}

func parseAnalyzeRequest(c *fiber.Ctx) (*analysis.AnalyzeRequest, error) {
	contentType := c.Get(fiber.HeaderContentType)
	if !strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
		var req analysis.AnalyzeRequest
		if err := c.BodyParser(&req); err != nil {
			return nil, analysis.ErrInvalidAnalysisData().WithDetail("parse_error", err.Error())
		}
		return &req, nil
	}

	req := analysis.AnalyzeRequest{
		JobDescription: c.FormValue("job_description"),
		ResumeID:       c.FormValue("resume_id"),
		Locale:         c.FormValue("locale"),
	}

	fileHeader, err := c.FormFile("cv")
	if err != nil {
		// Multipart without a file is fine; the service falls back to a
		// stored resume.
		return &req, nil
	}
	if fileHeader.Size > maxPDFSize {
		return nil, analysis.ErrInvalidAnalysisData().WithDetail("cv", "file exceeds 10MB limit")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, analysis.ErrInvalidAnalysisData().WithDetail("cv", err.Error())
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, analysis.ErrInvalidAnalysisData().WithDetail("cv", err.Error())
	}
	req.PDFData = data

	return &req, nil
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
