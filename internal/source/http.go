package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"draftmon/internal/config"
	"draftmon/internal/event"
	"draftmon/internal/extractor"
	"draftmon/internal/progress"
)

const fetchTimeout = 30 * time.Second

var defaultClient = &http.Client{Timeout: fetchTimeout}

func init() {
	Register(config.SourceHTTPHTML, newHTTPHTML)
	Register(config.SourceHTTPHTMLSearch, newHTTPHTMLSearch)
}

// httpHTML fetches a single page. Any fetch-level failure (connection error,
// timeout, non-2xx status) is fatal for the cycle.
type httpHTML struct {
	cfg    config.Source
	log    *progress.Logger
	client *http.Client
}

func newHTTPHTML(cfg config.Source, log *progress.Logger) (Source, error) {
	return &httpHTML{cfg: cfg, log: log, client: defaultClient}, nil
}

func (s *httpHTML) Name() string {
	return nameOr(s.cfg.Name, "http_source")
}

func (s *httpHTML) Fetch(ctx context.Context) ([]event.Event, error) {
	s.log.Printf("[source:http_html] requesting %s", s.cfg.URL)

	html, err := fetchHTML(ctx, s.client, s.cfg.URL)
	if err != nil {
		return nil, err
	}
	return extractor.Extract(html, s.cfg.Selectors, s.Name())
}

// httpHTMLSearch issues one GET per query against a {query}-templated URL.
// A failure on any query aborts the whole fetch; there is no per-query
// isolation here, unlike the search-engine adapter.
type httpHTMLSearch struct {
	cfg    config.Source
	log    *progress.Logger
	client *http.Client
}

func newHTTPHTMLSearch(cfg config.Source, log *progress.Logger) (Source, error) {
	return &httpHTMLSearch{cfg: cfg, log: log, client: defaultClient}, nil
}

func (s *httpHTMLSearch) Name() string {
	return nameOr(s.cfg.Name, "search_source")
}

func (s *httpHTMLSearch) Fetch(ctx context.Context) ([]event.Event, error) {
	var events []event.Event
	for _, q := range s.cfg.Queries {
		target := strings.ReplaceAll(s.cfg.SearchURLTemplate, "{query}", url.QueryEscape(q))
		s.log.Printf("[source:http_html_search] query %q -> %s", q, target)

		html, err := fetchHTML(ctx, s.client, target)
		if err != nil {
			return nil, err
		}
		batch, err := extractor.Extract(html, s.cfg.Selectors, s.Name())
		if err != nil {
			return nil, err
		}
		tagQuery(batch, q)
		events = append(events, batch...)
	}
	s.log.Printf("[source:http_html_search] parsed %d events total", len(events))
	return events, nil
}

// fetchHTML performs a single GET and returns the response body. Non-2xx
// responses are errors.
func fetchHTML(ctx context.Context, client *http.Client, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %s: %w", target, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %s for %s", resp.Status, target)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response from %s: %w", target, err)
	}
	return string(body), nil
}
