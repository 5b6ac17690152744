package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"

	"draftmon/internal/browser"
	"draftmon/internal/config"
	"draftmon/internal/event"
	"draftmon/internal/extractor"
	"draftmon/internal/progress"
)

const (
	elementWait = 15 * time.Second
	settleDelay = 2 * time.Second // let late JS finish rendering results
)

func init() {
	Register(config.SourceBrowserSearch, newBrowserSearch)
}

// browserSearch drives an automated browser session against a search page.
// The session is an exclusive resource: acquired at fetch start, torn down on
// every exit path. Element-wait timeouts are logged and tolerated, since a
// browser session cannot cheaply retry.
type browserSearch struct {
	cfg   config.Source
	log   *progress.Logger
	stdin io.Reader
}

func newBrowserSearch(cfg config.Source, log *progress.Logger) (Source, error) {
	return &browserSearch{cfg: cfg, log: log, stdin: os.Stdin}, nil
}

func (s *browserSearch) Name() string {
	return nameOr(s.cfg.Name, "browser_source")
}

func (s *browserSearch) Fetch(ctx context.Context) ([]event.Event, error) {
	if s.cfg.SearchPageURL == "" {
		s.log.Printf("[browser] search_page_url missing, skipping browser search")
		return nil, nil
	}

	b, err := browser.New(browser.Config{
		Headless:         !s.cfg.ShowUI,
		ProxyURL:         s.cfg.Proxy,
		UserDataDir:      s.cfg.UserDataDir,
		ProfileDirectory: s.cfg.ProfileDirectory,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	defer b.Close()

	var events []event.Event
	loginPrompted := false
	for _, q := range s.cfg.Queries {
		batch, err := s.searchQuery(ctx, b, q, &loginPrompted)
		if err != nil {
			return nil, err
		}
		events = append(events, batch...)
	}
	return events, nil
}

func (s *browserSearch) searchQuery(ctx context.Context, b *browser.Browser, q string, loginPrompted *bool) ([]event.Event, error) {
	page, err := b.NewPage()
	if err != nil {
		return nil, err
	}
	defer page.Close()

	target := s.cfg.SearchPageURL
	if strings.Contains(target, "{query}") {
		target = strings.ReplaceAll(target, "{query}", url.QueryEscape(q))
	}
	if err := page.Context(ctx).Timeout(fetchTimeout).Navigate(target); err != nil {
		return nil, fmt.Errorf("failed to navigate to %s: %w", target, err)
	}
	_ = page.Timeout(fetchTimeout).WaitLoad()

	if s.cfg.WaitLogin && !*loginPrompted {
		s.log.Printf("[browser] browser is open; finish login/verification in the window, then press Enter to continue...")
		waitForEnter(s.stdin)
		*loginPrompted = true
	}

	// A configured search input means the page cannot take the query in the
	// URL; fill and submit it, falling back to the query URL on any failure.
	if inputSel := s.cfg.Selectors.SearchInput; inputSel != "" {
		if err := s.submitQuery(page, inputSel, q); err != nil {
			s.log.Printf("[browser] search input not usable, using query URL instead: %v", err)
		}
	}

	waitFor := s.cfg.Selectors.WaitFor
	if waitFor == "" {
		waitFor = "body"
	}
	if _, err := page.Timeout(elementWait).Element(waitFor); err != nil {
		s.log.Printf("[browser] timed out waiting for %q, continuing: %v", waitFor, err)
	}
	time.Sleep(settleDelay)

	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("failed to read page HTML: %w", err)
	}

	batch, err := extractor.Extract(html, s.cfg.Selectors, s.Name())
	if err != nil {
		return nil, err
	}
	tagQuery(batch, q)
	return batch, nil
}

func (s *browserSearch) submitQuery(page *rod.Page, inputSel, q string) error {
	el, err := page.Timeout(elementWait).Element(inputSel)
	if err != nil {
		return fmt.Errorf("failed to find search input %q: %w", inputSel, err)
	}
	_ = el.SelectAllText()
	if err := el.Input(q); err != nil {
		return fmt.Errorf("failed to type query: %w", err)
	}

	if btnSel := s.cfg.Selectors.SearchButton; btnSel != "" {
		btn, err := page.Timeout(elementWait).Element(btnSel)
		if err != nil {
			return fmt.Errorf("failed to find search button %q: %w", btnSel, err)
		}
		if err := btn.Click(proto.InputMouseButtonLeft, 1); err != nil {
			return fmt.Errorf("failed to click search button: %w", err)
		}
		return nil
	}

	if err := el.Type(input.Enter); err != nil {
		return fmt.Errorf("failed to submit query: %w", err)
	}
	return nil
}

// waitForEnter blocks until the operator presses Enter (or stdin closes).
func waitForEnter(r io.Reader) {
	_, _ = bufio.NewReader(r).ReadString('\n')
}
