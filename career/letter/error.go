package letter

import (
	"net/http"

	"github.com/Abraxas-365/careerkit/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("LETTER")

var (
	CodeLetterNotFound    = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Letter not found")
	CodeInvalidLetterData = ErrRegistry.Register("INVALID_DATA", errx.TypeValidation, http.StatusBadRequest, "Invalid letter data")
	CodeDraftFailed       = ErrRegistry.Register("DRAFT_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to draft letter")
)

func ErrLetterNotFound() *errx.Error {
	return ErrRegistry.New(CodeLetterNotFound)
}

func ErrInvalidLetterData() *errx.Error {
	return ErrRegistry.New(CodeInvalidLetterData)
}

func ErrDraftFailed() *errx.Error {
	return ErrRegistry.New(CodeDraftFailed)
}
