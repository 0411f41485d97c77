package analysis

import (
	"net/http"

	"github.com/Abraxas-365/careerkit/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("ANALYSIS")

var (
	CodeAnalysisNotFound    = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Analysis not found")
	CodeInvalidAnalysisData = ErrRegistry.Register("INVALID_DATA", errx.TypeValidation, http.StatusBadRequest, "Invalid analysis input")
	CodeNoResumeAvailable   = ErrRegistry.Register("NO_RESUME", errx.TypeBusiness, http.StatusUnprocessableEntity, "No resume available for analysis")
	CodePDFExtractFailed    = ErrRegistry.Register("PDF_EXTRACT_FAILED", errx.TypeValidation, http.StatusBadRequest, "Could not read the uploaded PDF")
	CodeReviewFailed        = ErrRegistry.Register("REVIEW_FAILED", errx.TypeExternal, http.StatusBadGateway, "CV review failed")
)

func ErrAnalysisNotFound() *errx.Error {
	return ErrRegistry.New(CodeAnalysisNotFound)
}

func ErrInvalidAnalysisData() *errx.Error {
	return ErrRegistry.New(CodeInvalidAnalysisData)
}

func ErrNoResumeAvailable() *errx.Error {
	return ErrRegistry.New(CodeNoResumeAvailable)
}

func ErrPDFExtractFailed() *errx.Error {
	return ErrRegistry.New(CodePDFExtractFailed)
}

func ErrReviewFailed() *errx.Error {
	return ErrRegistry.New(CodeReviewFailed)
}
