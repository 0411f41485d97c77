package jobsearch

import "context"

// SiteScraper scrapes one job board for one keyword. Site-level failures
// (blocked, gated, empty, markup drift) yield an empty slice, not an error;
// an error means the scraping session itself is broken.
type SiteScraper interface {
	Source() Source
	Search(ctx context.Context, keyword string) ([]Listing, error)
}

// ScraperSession owns the browser shared by one request's keywords.
type ScraperSession interface {
	Scraper(source Source) (SiteScraper, error)
	Close()
}

// SessionFactory opens a fresh browser session per search request.
type SessionFactory interface {
	NewSession(ctx context.Context) (ScraperSession, error)
}

// RateLimiter throttles searches per site across the whole deployment.
type RateLimiter interface {
	// Allow reports whether one more search against the site may run now.
	Allow(ctx context.Context, source Source) (bool, error)
}
