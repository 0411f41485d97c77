package jobsearchinfra

import (
	"net/url"
	"strings"

	"github.com/Abraxas-365/careerkit/career/jobsearch"
)

// cascadeValue tries each selector in order and returns the first non-blank
// value the getter produces. Getter failures count as empty.
func cascadeValue(selectors jobsearch.FieldSelectors, get func(selector string) (string, bool)) string {
	for _, sel := range selectors {
		value, ok := get(sel)
		if !ok {
			continue
		}
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return ""
}

// absolutizeLink resolves a possibly relative href against the site origin.
// Unparseable hrefs come back empty.
func absolutizeLink(origin, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		return ref.String()
	}

	base, err := url.Parse(origin)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// isHTTPLink reports whether the link is a fetchable http(s) URL.
func isHTTPLink(link string) bool {
	return strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://")
}

// ukraineSpellings cover the location strings DOU uses across its Ukrainian,
// Russian and English variants.
var ukraineSpellings = []string{"україна", "украина", "ukraine"}

// mentionsUkraine reports whether a listing description places the job in
// Ukraine.
func mentionsUkraine(text string) bool {
	lower := strings.ToLower(text)
	for _, spelling := range ukraineSpellings {
		if strings.Contains(lower, spelling) {
			return true
		}
	}
	return false
}

// loginWallMarkers are the path fragments LinkedIn redirects anonymous
// traffic to when it gates the page.
var loginWallMarkers = []string{"/login", "/checkpoint", "/authwall", "/uas/"}

// hitsLoginWall reports whether the current page location is an auth wall
// rather than the requested results page.
func hitsLoginWall(location string) bool {
	for _, marker := range loginWallMarkers {
		if strings.Contains(location, marker) {
			return true
		}
	}
	return false
}

// digits extracts the longest digit run from a string; job boards embed the
// native posting id in the URL path.
func digits(s string) string {
	var best, current strings.Builder
	flush := func() {
		if current.Len() > best.Len() {
			best.Reset()
			best.WriteString(current.String())
		}
		current.Reset()
	}
	for _, r := range s {
		if r >= '0' && r <= '9' {
			current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return best.String()
}
