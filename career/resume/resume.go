package resume

import (
	"strings"
	"time"

	"github.com/Abraxas-365/careerkit/pkg/kernel"
)

// MaxPerUser caps how many resumes one account can hold.
const MaxPerUser = 20

// PersonalInfo is the contact block of a resume.
type PersonalInfo struct {
	FullName string   `json:"full_name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone,omitempty"`
	Location string   `json:"location,omitempty"`
	Links    []string `json:"links,omitempty"`
}

// ExperienceEntry is one job in the work history.
type ExperienceEntry struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
}

// EducationEntry is one school or degree.
type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
}

// LanguageEntry is a spoken language and proficiency level.
type LanguageEntry struct {
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
}

// Resume is a user-owned, structured CV. Section slices are stored as JSONB;
// the content embedding drives similarity lookups.
type Resume struct {
	ID        kernel.ResumeID `db:"id" json:"id"`
	UserID    kernel.UserID   `db:"user_id" json:"user_id"`
	Title     string          `db:"title" json:"title"`
	IsDefault bool            `db:"is_default" json:"is_default"`

	PersonalInfo PersonalInfo      `db:"personal_info" json:"personal_info"`
	Experience   []ExperienceEntry `db:"experience" json:"experience"`
	Education    []EducationEntry  `db:"education" json:"education"`
	Skills       []string          `db:"skills" json:"skills"`
	Languages    []LanguageEntry   `db:"languages" json:"languages"`
	Summary      string            `db:"summary" json:"summary"`

	PhotoURL string `db:"photo_url" json:"photo_url,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ContentText flattens the resume into the text that gets embedded and fed to
// the reviewer.
func (r *Resume) ContentText() string {
	var b strings.Builder

	writeLine := func(s string) {
		if s != "" {
			b.WriteString(s)
			b.WriteString("\n")
		}
	}

	writeLine(r.Title)
	writeLine(r.PersonalInfo.FullName)
	writeLine(r.PersonalInfo.Location)
	writeLine(r.Summary)

	for _, e := range r.Experience {
		writeLine(e.Position + " at " + e.Company)
		writeLine(e.Description)
	}
	for _, e := range r.Education {
		writeLine(e.Institution)
		writeLine(e.Degree)
	}
	if len(r.Skills) > 0 {
		writeLine("Skills: " + strings.Join(r.Skills, ", "))
	}
	for _, l := range r.Languages {
		writeLine(l.Name + " " + l.Level)
	}

	return strings.TrimSpace(b.String())
}

// Touch bumps the update timestamp.
func (r *Resume) Touch() {
	r.UpdatedAt = time.Now()
}
