package analysis

// AnalyzeRequest asks for a CV-vs-job-description evaluation. Exactly one
// resume source applies: an explicit resume id, an uploaded PDF (multipart),
// or neither, in which case the service picks the user's most similar resume.
type AnalyzeRequest struct {
	JobDescription string `json:"job_description" form:"job_description" validate:"required,min=20,max=50000"`
	ResumeID       string `json:"resume_id,omitempty" form:"resume_id"`
	Locale         string `json:"locale,omitempty" form:"locale" validate:"omitempty,oneof=en uk"`

	// PDFData is filled by the handler from the multipart upload.
	PDFData []byte `json:"-" form:"-"`
}
