package interview

import (
	"net/http"

	"github.com/Abraxas-365/careerkit/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("INTERVIEW")

var (
	CodeInterviewNotFound    = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Interview session not found")
	CodeInvalidInterviewData = ErrRegistry.Register("INVALID_DATA", errx.TypeValidation, http.StatusBadRequest, "Invalid interview data")
	CodeQuestionOutOfRange   = ErrRegistry.Register("QUESTION_OUT_OF_RANGE", errx.TypeValidation, http.StatusBadRequest, "Question index out of range")
	CodeAlreadyAnswered      = ErrRegistry.Register("ALREADY_ANSWERED", errx.TypeConflict, http.StatusConflict, "Question already answered")
	CodeSessionCompleted     = ErrRegistry.Register("SESSION_COMPLETED", errx.TypeBusiness, http.StatusUnprocessableEntity, "Session is already completed")
	CodeGenerationFailed     = ErrRegistry.Register("GENERATION_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to generate questions")
	CodeEvaluationFailed     = ErrRegistry.Register("EVALUATION_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to evaluate answer")
)

func ErrInterviewNotFound() *errx.Error {
	return ErrRegistry.New(CodeInterviewNotFound)
}

func ErrInvalidInterviewData() *errx.Error {
	return ErrRegistry.New(CodeInvalidInterviewData)
}

func ErrQuestionOutOfRange() *errx.Error {
	return ErrRegistry.New(CodeQuestionOutOfRange)
}

func ErrAlreadyAnswered() *errx.Error {
	return ErrRegistry.New(CodeAlreadyAnswered)
}

func ErrSessionCompleted() *errx.Error {
	return ErrRegistry.New(CodeSessionCompleted)
}

func ErrGenerationFailed() *errx.Error {
	return ErrRegistry.New(CodeGenerationFailed)
}

func ErrEvaluationFailed() *errx.Error {
	return ErrRegistry.New(CodeEvaluationFailed)
}
