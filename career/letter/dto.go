package letter

// CreateLetterRequest is the payload for a new letter.
type CreateLetterRequest struct {
	Title     string `json:"title" validate:"required,min=1,max=200"`
	Company   string `json:"company,omitempty"`
	Position  string `json:"position,omitempty"`
	Recipient string `json:"recipient,omitempty"`
	Body      string `json:"body" validate:"required"`
	Locale    string `json:"locale,omitempty" validate:"omitempty,oneof=en uk"`
}

// UpdateLetterRequest carries partial letter changes.
type UpdateLetterRequest struct {
	Title     *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Company   *string `json:"company,omitempty"`
	Position  *string `json:"position,omitempty"`
	Recipient *string `json:"recipient,omitempty"`
	Body      *string `json:"body,omitempty"`
	Locale    *string `json:"locale,omitempty" validate:"omitempty,oneof=en uk"`
}

// GenerateLetterRequest asks the AI for a draft.
type GenerateLetterRequest struct {
	Position   string   `json:"position" validate:"required,min=2,max=200"`
	Company    string   `json:"company,omitempty"`
	Recipient  string   `json:"recipient,omitempty"`
	Highlights []string `json:"highlights,omitempty" validate:"max=10"`
	Locale     string   `json:"locale,omitempty" validate:"omitempty,oneof=en uk"`
	Save       bool     `json:"save,omitempty"`
}

// GenerateLetterResponse returns the draft, plus the stored letter when the
// caller asked to save it.
type GenerateLetterResponse struct {
	Body   string  `json:"body"`
	Letter *Letter `json:"letter,omitempty"`
}
