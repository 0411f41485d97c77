package jobsearchinfra

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/fetch"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/Abraxas-365/careerkit/career/jobsearch"
	"github.com/Abraxas-365/careerkit/pkg/logx"
)

const (
	desktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	acceptLanguage   = "en-US,en;q=0.9,uk;q=0.8"

	viewportWidth  = 1366
	viewportHeight = 768

	navigateTimeout      = 15 * time.Second
	navigateRetryTimeout = 30 * time.Second
	resultsWaitTimeout   = 5 * time.Second
	nodeQueryTimeout     = 2 * time.Second
	fieldQueryTimeout    = time.Second

	// maxNodesPerKeyword caps how many job cards one keyword pass inspects.
	maxNodesPerKeyword = 40
)

// Factory opens one headless browser per search request.
type Factory struct {
	selectors jobsearch.Selectors
}

func NewFactory(selectors jobsearch.Selectors) *Factory {
	return &Factory{selectors: selectors}
}

// NewSession starts the browser eagerly so a missing or broken Chrome fails
// the request up front instead of on the first keyword.
func (f *Factory) NewSession(ctx context.Context) (jobsearch.ScraperSession, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(desktopUserAgent),
		chromedp.WindowSize(viewportWidth, viewportHeight),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, err
	}

	return &Session{
		browserCtx: browserCtx,
		selectors:  f.selectors,
		cancels:    []context.CancelFunc{cancelBrowser, cancelAlloc},
	}, nil
}

// Session owns the browser shared by one request's keyword passes.
type Session struct {
	browserCtx context.Context
	selectors  jobsearch.Selectors
	cancels    []context.CancelFunc
}

func (s *Session) Scraper(source jobsearch.Source) (jobsearch.SiteScraper, error) {
	switch source {
	case jobsearch.SourceDOU:
		return &douScraper{session: s, selectors: s.selectors.DOU}, nil
	case jobsearch.SourceLinkedIn:
		return &linkedinScraper{session: s, selectors: s.selectors.LinkedIn}, nil
	default:
		return nil, jobsearch.ErrUnsupportedSource().WithDetail("source", source)
	}
}

func (s *Session) Close() {
	for _, cancel := range s.cancels {
		cancel()
	}
}

// newTab opens a fresh page with request filtering installed: heavy static
// resources are aborted, everything else continues with the browser-like
// headers injected.
func (s *Session) newTab(ctx context.Context) (context.Context, context.CancelFunc, error) {
	tabCtx, cancelTab := chromedp.NewContext(s.browserCtx)

	stop := context.AfterFunc(ctx, cancelTab)
	cancel := func() {
		stop()
		cancelTab()
	}

	if err := chromedp.Run(tabCtx, fetch.Enable()); err != nil {
		cancel()
		return nil, nil, err
	}
	interceptRequests(tabCtx)

	return tabCtx, cancel, nil
}

func interceptRequests(tabCtx context.Context) {
	chromedp.ListenTarget(tabCtx, func(ev any) {
		e, ok := ev.(*fetch.EventRequestPaused)
		if !ok {
			return
		}

		go func() {
			c := chromedp.FromContext(tabCtx)
			execCtx := cdp.WithExecutor(tabCtx, c.Target)

			switch e.ResourceType {
			case network.ResourceTypeImage,
				network.ResourceTypeStylesheet,
				network.ResourceTypeFont,
				network.ResourceTypeMedia:
				if err := fetch.FailRequest(e.RequestID, network.ErrorReasonBlockedByClient).Do(execCtx); err != nil {
					logx.Debugf("abort request: %v", err)
				}
			default:
				headers := make([]*fetch.HeaderEntry, 0, len(e.Request.Headers)+2)
				for name, value := range e.Request.Headers {
					if s, ok := value.(string); ok && !strings.EqualFold(name, "Accept-Language") {
						headers = append(headers, &fetch.HeaderEntry{Name: name, Value: s})
					}
				}
				headers = append(headers,
					&fetch.HeaderEntry{Name: "Accept", Value: "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"},
					&fetch.HeaderEntry{Name: "Accept-Language", Value: acceptLanguage},
				)
				if err := fetch.ContinueRequest(e.RequestID).WithHeaders(headers).Do(execCtx); err != nil {
					logx.Debugf("continue request: %v", err)
				}
			}
		}()
	})
}

// navigate loads the URL with a bounded wait for the document, retrying once
// with a longer timeout. Job boards are slow and flaky; one retry absorbs most
// cold-cache stalls.
func navigate(tabCtx context.Context, pageURL string) error {
	err := runWithTimeout(tabCtx, navigateTimeout,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err == nil {
		return nil
	}
	logx.Debugf("navigation to %s retrying after: %v", pageURL, err)

	return runWithTimeout(tabCtx, navigateRetryTimeout,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

// waitForAny races the given selectors (results list vs empty-state banner);
// a timeout is tolerated because the caller probes for containers anyway.
func waitForAny(tabCtx context.Context, selectors []string) {
	if len(selectors) == 0 {
		return
	}
	combined := strings.Join(selectors, ", ")
	if err := runWithTimeout(tabCtx, resultsWaitTimeout,
		chromedp.WaitReady(combined, chromedp.ByQuery),
	); err != nil {
		logx.Debugf("wait for %q gave up: %v", combined, err)
	}
}

// firstContainerNodes walks the container cascade and returns the nodes of
// the first selector with any matches, capped at maxNodesPerKeyword.
func firstContainerNodes(tabCtx context.Context, selectors []string) ([]*cdp.Node, error) {
	for _, sel := range selectors {
		var nodes []*cdp.Node
		err := runWithTimeout(tabCtx, nodeQueryTimeout,
			chromedp.Nodes(sel, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0)),
		)
		if err != nil {
			return nil, err
		}
		if len(nodes) > 0 {
			if len(nodes) > maxNodesPerKeyword {
				nodes = nodes[:maxNodesPerKeyword]
			}
			return nodes, nil
		}
	}
	return nil, nil
}

// nodeText runs the field cascade for inner text scoped to one job card.
func nodeText(tabCtx context.Context, node *cdp.Node, selectors jobsearch.FieldSelectors) string {
	return cascadeValue(selectors, func(sel string) (string, bool) {
		var text string
		err := runWithTimeout(tabCtx, fieldQueryTimeout,
			chromedp.Text(sel, &text, chromedp.ByQuery, chromedp.FromNode(node), chromedp.AtLeast(0)),
		)
		return text, err == nil
	})
}

// nodeAttr runs the field cascade for an attribute scoped to one job card.
func nodeAttr(tabCtx context.Context, node *cdp.Node, selectors jobsearch.FieldSelectors, attr string) string {
	return cascadeValue(selectors, func(sel string) (string, bool) {
		var value string
		var found bool
		err := runWithTimeout(tabCtx, fieldQueryTimeout,
			chromedp.AttributeValue(sel, attr, &value, &found, chromedp.ByQuery, chromedp.FromNode(node), chromedp.AtLeast(0)),
		)
		return value, err == nil && found
	})
}

func runWithTimeout(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return chromedp.Run(tctx, actions...)
}
