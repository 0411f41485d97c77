package jobsearchinfra

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"

	"github.com/Abraxas-365/careerkit/career/jobsearch"
	"github.com/Abraxas-365/careerkit/pkg/logx"
)

const douOrigin = "https://jobs.dou.ua"

// douScraper scrapes jobs.dou.ua. DOU gates search results behind a session
// cookie; without one the page renders a teaser, so the pass is skipped.
type douScraper struct {
	session   *Session
	selectors jobsearch.SiteSelectors
}

func (d *douScraper) Source() jobsearch.Source { return jobsearch.SourceDOU }

func (d *douScraper) Search(ctx context.Context, keyword string) ([]jobsearch.Listing, error) {
	tabCtx, cancel, err := d.session.newTab(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	searchURL := fmt.Sprintf("%s/vacancies/?search=%s", douOrigin, url.QueryEscape(keyword))
	if err := navigate(tabCtx, searchURL); err != nil {
		logx.Warnf("dou: navigation failed for %q: %v", keyword, err)
		return []jobsearch.Listing{}, nil
	}

	if !d.hasSessionCookie(tabCtx) {
		logx.Warnf("dou: no session cookie, search results are gated")
		return []jobsearch.Listing{}, nil
	}

	waitForAny(tabCtx, append(d.selectors.ResultsWait, d.selectors.EmptyWait...))

	nodes, err := firstContainerNodes(tabCtx, d.selectors.Containers)
	if err != nil {
		logx.Warnf("dou: container query failed for %q: %v", keyword, err)
		return []jobsearch.Listing{}, nil
	}

	listings := make([]jobsearch.Listing, 0, len(nodes))
	for i, node := range nodes {
		link := absolutizeLink(douOrigin, nodeAttr(tabCtx, node, d.selectors.Link, "href"))

		id := digits(link)
		if id == "" {
			id = uuid.NewString()
		}

		listing := jobsearch.Listing{
			Index:       i,
			ID:          id,
			Title:       nodeText(tabCtx, node, d.selectors.Title),
			Company:     nodeText(tabCtx, node, d.selectors.Company),
			Description: nodeText(tabCtx, node, d.selectors.Description),
			Link:        link,
			Source:      jobsearch.SourceDOU,
		}

		if !listing.Complete() || !isHTTPLink(listing.Link) {
			continue
		}
		// DOU mixes in relocation offers; keep Ukraine-based listings only.
		if !mentionsUkraine(listing.Description) {
			continue
		}
		listings = append(listings, listing)
	}

	return listings, nil
}

func (d *douScraper) hasSessionCookie(tabCtx context.Context) bool {
	var found bool
	err := chromedp.Run(tabCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		cookies, err := storage.GetCookies().Do(ctx)
		if err != nil {
			return err
		}
		for _, cookie := range cookies {
			if strings.Contains(cookie.Domain, "dou.ua") {
				found = true
				return nil
			}
		}
		return nil
	}))
	if err != nil {
		logx.Debugf("dou: cookie probe failed: %v", err)
		return false
	}
	return found
}
