package jobsearch

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode"
)

// Source identifies a supported job board.
type Source string

const (
	SourceDOU      Source = "dou"
	SourceLinkedIn Source = "linkedin"
)

// MaxResults caps how many listings one search request accumulates across all
// keywords.
const MaxResults = 20

// Listing is one scraped job posting.
type Listing struct {
	Index       int    `json:"index"`
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Source      Source `json:"source"`
}

// CompositeKey is the uniqueness key used to drop duplicates across keyword
// passes.
func (l Listing) CompositeKey() string {
	return fmt.Sprintf("%s|%d|%s|%s|%s|%s", l.Source, l.Index, l.ID, l.Company, l.Title, l.Link)
}

// Complete reports whether the listing has the fields a result must carry.
func (l Listing) Complete() bool {
	return l.Title != "" && l.Company != "" && l.Link != ""
}

// SplitKeywords breaks a raw query into search keywords on whitespace and
// commas, dropping empties.
func SplitKeywords(query string) []string {
	fields := strings.FieldsFunc(query, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
	keywords := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			keywords = append(keywords, f)
		}
	}
	return keywords
}

// FieldSelectors is a CSS selector cascade: candidates are tried in order and
// the first one yielding a value wins.
type FieldSelectors []string

// SiteSelectors is the scraping recipe for one job board. Selector sets are
// data, not code: deployments can swap them without a rebuild when a board
// changes its markup.
type SiteSelectors struct {
	// Containers are candidate selectors for one job card; the first
	// selector matching any nodes wins.
	Containers []string `json:"containers"`

	Title       FieldSelectors `json:"title"`
	Company     FieldSelectors `json:"company"`
	Description FieldSelectors `json:"description"`

	// Link selectors resolve to an element whose href is the posting URL.
	Link FieldSelectors `json:"link"`

	// ResultsWait and EmptyWait are raced after navigation: whichever shows
	// up first ends the wait. A timeout on both is tolerated.
	ResultsWait []string `json:"results_wait"`
	EmptyWait   []string `json:"empty_wait"`
}

// Selectors bundles the per-site recipes.
type Selectors struct {
	DOU      SiteSelectors `json:"dou"`
	LinkedIn SiteSelectors `json:"linkedin"`
}

// DefaultSelectors returns the built-in recipes for both boards.
func DefaultSelectors() Selectors {
	return Selectors{
		DOU: SiteSelectors{
			Containers: []string{
				"ul.lt > li.l-vacancy",
				"div.vacancy-list li.l-vacancy",
				"li[class*='vacancy']",
			},
			Title: FieldSelectors{
				"div.title > a.vt",
				"a.vt",
				"div.title a",
			},
			Company: FieldSelectors{
				"div.title > strong > a.company",
				"a.company",
				"strong a",
			},
			Description: FieldSelectors{
				"div.sh-info",
				"div.info",
			},
			Link: FieldSelectors{
				"div.title > a.vt",
				"a.vt",
			},
			ResultsWait: []string{"ul.lt", "div.vacancy-list"},
			EmptyWait:   []string{"div.nothing-found", "div.b-inner-page-header"},
		},
		LinkedIn: SiteSelectors{
			Containers: []string{
				"ul.jobs-search__results-list > li",
				"div.jobs-search-results-list ul > li",
				"li[data-occludable-job-id]",
			},
			Title: FieldSelectors{
				"h3.base-search-card__title",
				"a.job-card-list__title",
				"h3",
			},
			Company: FieldSelectors{
				"h4.base-search-card__subtitle",
				"a.hidden-nested-link",
				"h4",
			},
			Description: FieldSelectors{
				"span.job-search-card__location",
				"div.base-search-card__metadata",
			},
			Link: FieldSelectors{
				"a.base-card__full-link",
				"a.job-card-list__title",
				"a",
			},
			ResultsWait: []string{"ul.jobs-search__results-list", "div.jobs-search-results-list"},
			EmptyWait:   []string{"div.jobs-search-no-results-banner", "section.no-results"},
		},
	}
}

// LoadSelectors reads a JSON override file on top of the defaults. Sites
// absent from the file keep their built-in recipe.
func LoadSelectors(path string) (Selectors, error) {
	selectors := DefaultSelectors()
	if path == "" {
		return selectors, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return selectors, fmt.Errorf("read selectors file: %w", err)
	}

	var override struct {
		DOU      *SiteSelectors `json:"dou"`
		LinkedIn *SiteSelectors `json:"linkedin"`
	}
	if err := json.Unmarshal(raw, &override); err != nil {
		return selectors, fmt.Errorf("parse selectors file: %w", err)
	}

	if override.DOU != nil {
		selectors.DOU = *override.DOU
	}
	if override.LinkedIn != nil {
		selectors.LinkedIn = *override.LinkedIn
	}
	return selectors, nil
}
