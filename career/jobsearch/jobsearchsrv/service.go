package jobsearchsrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/careerkit/career/jobsearch"
	"github.com/Abraxas-365/careerkit/pkg/logx"
)

// Service orchestrates one search request: throttle check, one browser
// session shared by all keywords, sequential keyword passes with a minimum
// delay, composite-key dedupe, and a hard result cap.
type Service struct {
	sessions jobsearch.SessionFactory
	limiter  jobsearch.RateLimiter

	minDelay   time.Duration
	maxResults int
}

func NewService(sessions jobsearch.SessionFactory, limiter jobsearch.RateLimiter, minDelay time.Duration) *Service {
	return &Service{
		sessions:   sessions,
		limiter:    limiter,
		minDelay:   minDelay,
		maxResults: jobsearch.MaxResults,
	}
}

// Search runs the full keyword sweep against one job board.
func (s *Service) Search(ctx context.Context, source jobsearch.Source, req jobsearch.SearchRequest) (*jobsearch.SearchResponse, error) {
	keywords := jobsearch.SplitKeywords(req.SearchQuery)
	if len(keywords) == 0 {
		return nil, jobsearch.ErrInvalidQuery().WithDetail("searchQuery", "no keywords")
	}

	allowed, err := s.limiter.Allow(ctx, source)
	if err != nil {
		// A broken throttle backend must not take job search down with it.
		logx.Warnf("rate limiter unavailable, allowing search: %v", err)
		allowed = true
	}
	if !allowed {
		return nil, jobsearch.ErrRateLimited().WithDetail("source", source)
	}

	session, err := s.sessions.NewSession(ctx)
	if err != nil {
		return nil, jobsearch.ErrRegistry.NewWithCause(jobsearch.CodeSearchFailed, err)
	}
	defer session.Close()

	scraper, err := session.Scraper(source)
	if err != nil {
		return nil, jobsearch.ErrUnsupportedSource().WithDetail("source", source)
	}

	seen := make(map[string]struct{})
	jobs := make([]jobsearch.Listing, 0, s.maxResults)

	for i, keyword := range keywords {
		if i > 0 && s.minDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, jobsearch.ErrRegistry.NewWithCause(jobsearch.CodeSearchFailed, ctx.Err())
			case <-time.After(s.minDelay):
			}
		}

		listings, err := scraper.Search(ctx, keyword)
		if err != nil {
			return nil, jobsearch.ErrRegistry.NewWithCause(jobsearch.CodeSearchFailed, err)
		}
		logx.Debugf("%s: keyword %q yielded %d listings", source, keyword, len(listings))

		for _, listing := range listings {
			key := listing.CompositeKey()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			jobs = append(jobs, listing)

			if len(jobs) >= s.maxResults {
				return &jobsearch.SearchResponse{Jobs: jobs}, nil
			}
		}
	}

	return &jobsearch.SearchResponse{Jobs: jobs}, nil
}
