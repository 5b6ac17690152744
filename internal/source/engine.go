package source

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"draftmon/internal/config"
	"draftmon/internal/event"
	"draftmon/internal/progress"
	"draftmon/internal/sites"
)

const (
	duckDuckGoEndpoint = "https://duckduckgo.com/html/"
	engineUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

func init() {
	Register(config.SourceSearchEngine, newSearchEngine)
}

func newSearchEngine(cfg config.Source, log *progress.Logger) (Source, error) {
	switch cfg.Engine {
	case config.EngineDuckDuckGo:
		return newDuckDuckGo(cfg, log), nil
	case config.EngineBrowser:
		return &browserEngine{cfg: cfg, log: log}, nil
	default:
		return nil, fmt.Errorf("unsupported search_engine engine: %s", cfg.Engine)
	}
}

// duckDuckGo queries DuckDuckGo's HTML results page, optionally scoped to a
// known site's domain. Per-query failures are logged and skipped so one dead
// query cannot sink the whole aggregation.
type duckDuckGo struct {
	cfg      config.Source
	log      *progress.Logger
	client   *http.Client
	endpoint string
}

func newDuckDuckGo(cfg config.Source, log *progress.Logger) *duckDuckGo {
	return &duckDuckGo{cfg: cfg, log: log, client: defaultClient, endpoint: duckDuckGoEndpoint}
}

func (s *duckDuckGo) Name() string {
	return s.cfg.Site
}

func (s *duckDuckGo) Fetch(ctx context.Context) ([]event.Event, error) {
	var events []event.Event
	for _, q := range s.cfg.Queries {
		fullQuery := q
		if domain := sites.Domain(s.cfg.Site); domain != "" {
			fullQuery = "site:" + domain + " " + q
		}
		s.log.Printf("[engine] duckduckgo query [%s]: %s", s.cfg.Site, fullQuery)

		doc, err := s.search(ctx, fullQuery)
		if err != nil {
			s.log.Printf("[engine] query %q failed, skipping: %v", fullQuery, err)
			continue
		}
		batch := parseResults(doc, s.cfg.Site, q, s.cfg.MaxResults)
		s.log.Printf("[engine] query %q parsed %d results", fullQuery, len(batch))
		events = append(events, batch...)
	}
	s.log.Printf("[engine] aggregated %d events", len(events))
	return events, nil
}

func (s *duckDuckGo) search(ctx context.Context, query string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}

	qs := req.URL.Query()
	qs.Set("q", query)
	qs.Set("kl", "cn-zh")
	qs.Set("kad", "zh_CN")
	req.URL.RawQuery = qs.Encode()
	req.Header.Set("User-Agent", engineUserAgent)
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse results page: %w", err)
	}
	return doc, nil
}

// parseResults extracts up to max result entries. div.result is the current
// results markup; td.result-link is the legacy layout DuckDuckGo still serves
// on some result pages.
func parseResults(doc *goquery.Document, site, query string, max int) []event.Event {
	results := doc.Find("div.result")
	if results.Length() == 0 {
		results = doc.Find("td.result-link")
	}

	var events []event.Event
	results.EachWithBreak(func(i int, r *goquery.Selection) bool {
		if i >= max {
			return false
		}
		a := r.Find("a.result__a").First()
		if a.Length() == 0 {
			a = r.Find("a").First()
		}
		snippet := firstOf(r, "a.result__snippet", "div.result__snippet", "td.result-snippet")

		events = append(events, event.Event{
			ID:       fmt.Sprintf("%s_%s_%d", site, query, i+1),
			Source:   site,
			URL:      a.AttrOr("href", ""),
			Title:    strings.TrimSpace(a.Text()),
			Content:  strings.TrimSpace(snippet.Text()),
			Lang:     "en",
			Metadata: map[string]string{"query": query},
		})
		return true
	})
	return events
}

// firstOf returns the first non-empty selection among the given selectors.
func firstOf(s *goquery.Selection, selectors ...string) *goquery.Selection {
	for _, sel := range selectors {
		if found := s.Find(sel).First(); found.Length() > 0 {
			return found
		}
	}
	return s.Find(selectors[len(selectors)-1]).First()
}

// browserEngine drives a real browser against a known site's search page.
// When the site has no built-in defaults and no explicit search_page_url is
// configured, it falls back to the DuckDuckGo engine, unscoped.
type browserEngine struct {
	cfg config.Source
	log *progress.Logger
}

func (s *browserEngine) Name() string {
	return s.cfg.Site
}

func (s *browserEngine) Fetch(ctx context.Context) ([]event.Event, error) {
	cfg := s.cfg
	if cfg.SearchPageURL == "" {
		if d, ok := sites.Defaults(cfg.Site); ok {
			cfg.SearchPageURL = d.SearchPageURL
			cfg.Selectors = d.Selectors
		}
	}

	if cfg.SearchPageURL == "" {
		s.log.Printf("[engine] no browser defaults for site %q, falling back to duckduckgo", cfg.Site)
		ddg := cfg
		ddg.Site = "duckduckgo"
		return newDuckDuckGo(ddg, s.log).Fetch(ctx)
	}

	s.log.Printf("[engine] browser search on site %s", cfg.Site)
	bs := &browserSearch{cfg: cfg, log: s.log, stdin: os.Stdin}
	return bs.Fetch(ctx)
}
