package jobsearchinfra

import (
	"context"
	"fmt"
	"net/url"

	"github.com/chromedp/chromedp"
	"github.com/google/uuid"

	"github.com/Abraxas-365/careerkit/career/jobsearch"
	"github.com/Abraxas-365/careerkit/pkg/logx"
)

const linkedinOrigin = "https://www.linkedin.com"

// linkedinScraper scrapes the public LinkedIn job search. LinkedIn bounces
// anonymous traffic to a login or checkpoint page; that redirect means the
// pass yields nothing, not that the request failed.
type linkedinScraper struct {
	session   *Session
	selectors jobsearch.SiteSelectors
}

func (l *linkedinScraper) Source() jobsearch.Source { return jobsearch.SourceLinkedIn }

func (l *linkedinScraper) Search(ctx context.Context, keyword string) ([]jobsearch.Listing, error) {
	tabCtx, cancel, err := l.session.newTab(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	searchURL := fmt.Sprintf("%s/jobs/search/?keywords=%s", linkedinOrigin, url.QueryEscape(keyword))
	if err := navigate(tabCtx, searchURL); err != nil {
		logx.Warnf("linkedin: navigation failed for %q: %v", keyword, err)
		return []jobsearch.Listing{}, nil
	}

	if l.blocked(tabCtx) {
		logx.Warnf("linkedin: redirected to login/checkpoint, treating as blocked")
		return []jobsearch.Listing{}, nil
	}

	waitForAny(tabCtx, append(l.selectors.ResultsWait, l.selectors.EmptyWait...))

	nodes, err := firstContainerNodes(tabCtx, l.selectors.Containers)
	if err != nil {
		logx.Warnf("linkedin: container query failed for %q: %v", keyword, err)
		return []jobsearch.Listing{}, nil
	}

	listings := make([]jobsearch.Listing, 0, len(nodes))
	for i, node := range nodes {
		link := absolutizeLink(linkedinOrigin, nodeAttr(tabCtx, node, l.selectors.Link, "href"))

		id := digits(link)
		if id == "" {
			id = uuid.NewString()
		}

		listing := jobsearch.Listing{
			Index:       i,
			ID:          id,
			Title:       nodeText(tabCtx, node, l.selectors.Title),
			Company:     nodeText(tabCtx, node, l.selectors.Company),
			Description: nodeText(tabCtx, node, l.selectors.Description),
			Link:        link,
			Source:      jobsearch.SourceLinkedIn,
		}

		if !listing.Complete() || !isHTTPLink(listing.Link) {
			continue
		}
		listings = append(listings, listing)
	}

	return listings, nil
}

func (l *linkedinScraper) blocked(tabCtx context.Context) bool {
	var location string
	if err := chromedp.Run(tabCtx, chromedp.Location(&location)); err != nil {
		logx.Debugf("linkedin: reading the page location failed: %v", err)
		return true
	}
	return hitsLoginWall(location)
}
