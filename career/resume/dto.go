package resume

// CreateResumeRequest is the payload for a new resume.
type CreateResumeRequest struct {
	Title        string            `json:"title" validate:"required,min=1,max=200"`
	PersonalInfo PersonalInfo      `json:"personal_info"`
	Experience   []ExperienceEntry `json:"experience,omitempty"`
	Education    []EducationEntry  `json:"education,omitempty"`
	Skills       []string          `json:"skills,omitempty"`
	Languages    []LanguageEntry   `json:"languages,omitempty"`
	Summary      string            `json:"summary,omitempty"`
	IsDefault    bool              `json:"is_default,omitempty"`
}

// UpdateResumeRequest carries partial resume changes; nil fields are left
// untouched.
type UpdateResumeRequest struct {
	Title        *string            `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	PersonalInfo *PersonalInfo      `json:"personal_info,omitempty"`
	Experience   *[]ExperienceEntry `json:"experience,omitempty"`
	Education    *[]EducationEntry  `json:"education,omitempty"`
	Skills       *[]string          `json:"skills,omitempty"`
	Languages    *[]LanguageEntry   `json:"languages,omitempty"`
	Summary      *string            `json:"summary,omitempty"`
}
