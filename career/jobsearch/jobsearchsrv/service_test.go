package jobsearchsrv

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Abraxas-365/careerkit/career/jobsearch"
	"github.com/Abraxas-365/careerkit/pkg/errx"
)

type fakeScraper struct {
	source    jobsearch.Source
	byKeyword map[string][]jobsearch.Listing
	err       error
	searched  []string
}

func (s *fakeScraper) Source() jobsearch.Source { return s.source }

func (s *fakeScraper) Search(_ context.Context, keyword string) ([]jobsearch.Listing, error) {
	s.searched = append(s.searched, keyword)
	if s.err != nil {
		return nil, s.err
	}
	return s.byKeyword[keyword], nil
}

type fakeSession struct {
	scraper *fakeScraper
	closed  bool
}

func (s *fakeSession) Scraper(source jobsearch.Source) (jobsearch.SiteScraper, error) {
	if source != s.scraper.source {
		return nil, errors.New("unknown source")
	}
	return s.scraper, nil
}

func (s *fakeSession) Close() { s.closed = true }

type fakeFactory struct {
	session *fakeSession
	err     error
}

func (f *fakeFactory) NewSession(context.Context) (jobsearch.ScraperSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

type fakeLimiter struct {
	allowed bool
	err     error
}

func (l *fakeLimiter) Allow(context.Context, jobsearch.Source) (bool, error) {
	return l.allowed, l.err
}

func listing(id, title string) jobsearch.Listing {
	return jobsearch.Listing{
		ID:      id,
		Title:   title,
		Company: "Acme",
		Link:    "https://jobs.example.com/" + id,
		Source:  jobsearch.SourceDOU,
	}
}

func newTestService(scraper *fakeScraper, limiter *fakeLimiter) (*Service, *fakeSession) {
	session := &fakeSession{scraper: scraper}
	return NewService(&fakeFactory{session: session}, limiter, 0), session
}

func TestSearchDeduplicatesAcrossKeywords(t *testing.T) {
	shared := listing("1", "Go Developer")
	scraper := &fakeScraper{
		source: jobsearch.SourceDOU,
		byKeyword: map[string][]jobsearch.Listing{
			"golang":  {shared, listing("2", "Backend Engineer")},
			"backend": {shared, listing("3", "Platform Engineer")},
		},
	}
	svc, session := newTestService(scraper, &fakeLimiter{allowed: true})

	resp, err := svc.Search(context.Background(), jobsearch.SourceDOU, jobsearch.SearchRequest{
		SearchQuery: "golang, backend",
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(resp.Jobs) != 3 {
		t.Errorf("expected 3 unique jobs, got %d", len(resp.Jobs))
	}
	if len(scraper.searched) != 2 {
		t.Errorf("expected 2 sequential keyword passes, got %v", scraper.searched)
	}
	if !session.closed {
		t.Error("session must be closed after the request")
	}
}

func TestSearchStopsAtResultCap(t *testing.T) {
	many := make([]jobsearch.Listing, 30)
	for i := range many {
		many[i] = listing(fmt.Sprintf("job-%d", i), fmt.Sprintf("Job %d", i))
	}
	scraper := &fakeScraper{
		source: jobsearch.SourceDOU,
		byKeyword: map[string][]jobsearch.Listing{
			"golang": many,
			"later":  {listing("never", "Never scraped")},
		},
	}
	svc, _ := newTestService(scraper, &fakeLimiter{allowed: true})

	resp, err := svc.Search(context.Background(), jobsearch.SourceDOU, jobsearch.SearchRequest{
		SearchQuery: "golang later",
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(resp.Jobs) != jobsearch.MaxResults {
		t.Errorf("expected cap of %d, got %d", jobsearch.MaxResults, len(resp.Jobs))
	}
	if len(scraper.searched) != 1 {
		t.Errorf("cap reached on first keyword, later keywords should be skipped: %v", scraper.searched)
	}
}

func TestSearchRejectedByThrottle(t *testing.T) {
	scraper := &fakeScraper{source: jobsearch.SourceDOU}
	svc, _ := newTestService(scraper, &fakeLimiter{allowed: false})

	_, err := svc.Search(context.Background(), jobsearch.SourceDOU, jobsearch.SearchRequest{
		SearchQuery: "golang",
	})
	var appErr *errx.Error
	if !errors.As(err, &appErr) || appErr.Code != "JOBSEARCH_RATE_LIMITED" {
		t.Errorf("expected JOBSEARCH_RATE_LIMITED, got %v", err)
	}
	if len(scraper.searched) != 0 {
		t.Error("throttled request must not reach the scraper")
	}
}

func TestSearchFailsOpenWhenThrottleIsDown(t *testing.T) {
	scraper := &fakeScraper{
		source: jobsearch.SourceDOU,
		byKeyword: map[string][]jobsearch.Listing{
			"golang": {listing("1", "Go Developer")},
		},
	}
	svc, _ := newTestService(scraper, &fakeLimiter{allowed: false, err: errors.New("redis down")})

	resp, err := svc.Search(context.Background(), jobsearch.SourceDOU, jobsearch.SearchRequest{
		SearchQuery: "golang",
	})
	if err != nil {
		t.Fatalf("throttle outage must not block search: %v", err)
	}
	if len(resp.Jobs) != 1 {
		t.Errorf("expected 1 job, got %d", len(resp.Jobs))
	}
}

func TestSearchEmptyQueryRejected(t *testing.T) {
	svc, _ := newTestService(&fakeScraper{source: jobsearch.SourceDOU}, &fakeLimiter{allowed: true})

	_, err := svc.Search(context.Background(), jobsearch.SourceDOU, jobsearch.SearchRequest{
		SearchQuery: " , ,, ",
	})
	var appErr *errx.Error
	if !errors.As(err, &appErr) || appErr.Code != "JOBSEARCH_INVALID_QUERY" {
		t.Errorf("expected JOBSEARCH_INVALID_QUERY, got %v", err)
	}
}

func TestSearchEmptyResultsAreNotAnError(t *testing.T) {
	// A gated or blocked site yields empty slices from the scraper; the
	// request still succeeds with an empty jobs array.
	scraper := &fakeScraper{
		source:    jobsearch.SourceLinkedIn,
		byKeyword: map[string][]jobsearch.Listing{},
	}
	session := &fakeSession{scraper: scraper}
	svc := NewService(&fakeFactory{session: session}, &fakeLimiter{allowed: true}, 0)

	resp, err := svc.Search(context.Background(), jobsearch.SourceLinkedIn, jobsearch.SearchRequest{
		SearchQuery: "golang backend",
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if resp.Jobs == nil || len(resp.Jobs) != 0 {
		t.Errorf("expected empty non-nil jobs, got %#v", resp.Jobs)
	}
}

func TestSearchScraperErrorSurfacesAsSearchFailed(t *testing.T) {
	scraper := &fakeScraper{source: jobsearch.SourceDOU, err: errors.New("browser crashed")}
	svc, session := newTestService(scraper, &fakeLimiter{allowed: true})

	_, err := svc.Search(context.Background(), jobsearch.SourceDOU, jobsearch.SearchRequest{
		SearchQuery: "golang",
	})
	var appErr *errx.Error
	if !errors.As(err, &appErr) || appErr.Code != "JOBSEARCH_SEARCH_FAILED" {
		t.Errorf("expected JOBSEARCH_SEARCH_FAILED, got %v", err)
	}
	if !session.closed {
		t.Error("session must be closed on failure too")
	}
}
