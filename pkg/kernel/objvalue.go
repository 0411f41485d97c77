package kernel

import "strings"

type Email string

func NewEmail(addr string) Email {
	return Email(strings.ToLower(strings.TrimSpace(addr)))
}

func (e Email) String() string { return string(e) }
func (e Email) IsEmpty() bool  { return string(e) == "" }

// Locale identifies the language the user wants generated content in.
type Locale string

const (
	LocaleEnglish   Locale = "en"
	LocaleUkrainian Locale = "uk"
)

// Normalize maps unknown locales to English.
func (l Locale) Normalize() Locale {
	switch l {
	case LocaleEnglish, LocaleUkrainian:
		return l
	default:
		return LocaleEnglish
	}
}

func (l Locale) String() string { return string(l) }
