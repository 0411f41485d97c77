package jobsearch

// SearchRequest carries the raw query string; keywords are split on
// whitespace and commas.
type SearchRequest struct {
	SearchQuery string `json:"searchQuery" validate:"required,min=2,max=300"`
}

// SearchResponse is the accumulated, deduplicated result set.
type SearchResponse struct {
	Jobs []Listing `json:"jobs"`
}
