package jobsearch

import (
	"net/http"

	"github.com/Abraxas-365/careerkit/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("JOBSEARCH")

var (
	CodeInvalidQuery      = ErrRegistry.Register("INVALID_QUERY", errx.TypeValidation, http.StatusBadRequest, "Invalid search query")
	CodeUnsupportedSource = ErrRegistry.Register("UNSUPPORTED_SOURCE", errx.TypeValidation, http.StatusBadRequest, "Unsupported job board")
	CodeRateLimited       = ErrRegistry.Register("RATE_LIMITED", errx.TypeRateLimit, http.StatusTooManyRequests, "Too many searches, try again later")
	CodeSearchFailed      = ErrRegistry.Register("SEARCH_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Job search failed")
)

func ErrInvalidQuery() *errx.Error {
	return ErrRegistry.New(CodeInvalidQuery)
}

func ErrUnsupportedSource() *errx.Error {
	return ErrRegistry.New(CodeUnsupportedSource)
}

func ErrRateLimited() *errx.Error {
	return ErrRegistry.New(CodeRateLimited)
}

func ErrSearchFailed() *errx.Error {
	return ErrRegistry.New(CodeSearchFailed)
}
