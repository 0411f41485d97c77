package interview

// CreateInterviewRequest starts a new practice session.
type CreateInterviewRequest struct {
	Position       string `json:"position" validate:"required,min=2,max=200"`
	JobDescription string `json:"job_description,omitempty" validate:"max=20000"`
	Locale         string `json:"locale,omitempty" validate:"omitempty,oneof=en uk"`
	QuestionCount  int    `json:"question_count,omitempty" validate:"omitempty,min=1,max=10"`
}

// AnswerQuestionRequest submits one answer for evaluation.
type AnswerQuestionRequest struct {
	QuestionIndex int    `json:"question_index" validate:"min=0"`
	Answer        string `json:"answer" validate:"required,min=1,max=10000"`
}
