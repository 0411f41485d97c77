package analysis

import (
	"time"

	"github.com/Abraxas-365/careerkit/pkg/kernel"
)

// Analysis is one persisted CV-vs-job-description evaluation.
type Analysis struct {
	ID     kernel.AnalysisID `db:"id" json:"id"`
	UserID kernel.UserID     `db:"user_id" json:"user_id"`

	// ResumeID is set when the reviewed text came from a stored resume,
	// either picked explicitly or by similarity.
	ResumeID kernel.ResumeID `db:"resume_id" json:"resume_id,omitempty"`

	JobDescription string        `db:"job_description" json:"job_description"`
	Locale         kernel.Locale `db:"locale" json:"locale"`

	MatchScore    int      `db:"match_score" json:"match_score"`
	Strengths     []string `db:"strengths" json:"strengths"`
	Gaps          []string `db:"gaps" json:"gaps"`
	MissingSkills []string `db:"missing_skills" json:"missing_skills"`
	Summary       string   `db:"summary" json:"summary"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
