package resume

import (
	"net/http"

	"github.com/Abraxas-365/careerkit/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("RESUME")

var (
	CodeResumeNotFound     = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Resume not found")
	CodeInvalidResumeData  = ErrRegistry.Register("INVALID_DATA", errx.TypeValidation, http.StatusBadRequest, "Invalid resume data")
	CodeMaxResumesExceeded = ErrRegistry.Register("MAX_RESUMES_EXCEEDED", errx.TypeBusiness, http.StatusUnprocessableEntity, "Maximum number of resumes exceeded")
	CodeEmbeddingFailed    = ErrRegistry.Register("EMBEDDING_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to generate embeddings")
	CodePhotoUploadFailed  = ErrRegistry.Register("PHOTO_UPLOAD_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to upload photo")
)

func ErrResumeNotFound() *errx.Error {
	return ErrRegistry.New(CodeResumeNotFound)
}

func ErrInvalidResumeData() *errx.Error {
	return ErrRegistry.New(CodeInvalidResumeData)
}

func ErrMaxResumesExceeded() *errx.Error {
	return ErrRegistry.New(CodeMaxResumesExceeded)
}

func ErrEmbeddingFailed() *errx.Error {
	return ErrRegistry.New(CodeEmbeddingFailed)
}

func ErrPhotoUploadFailed() *errx.Error {
	return ErrRegistry.New(CodePhotoUploadFailed)
}
