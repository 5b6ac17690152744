package extractor

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"

	"draftmon/internal/config"
	"draftmon/internal/event"
)

// Generic selector defaults, used for any selector the configuration leaves
// empty.
const (
	defaultContainer     = "article"
	defaultTitle         = "h2"
	defaultContent       = "p"
	defaultLink          = "a"
	defaultIDAttr        = "data-id"
	defaultCreatedAtAttr = "data-created-at"
	defaultLangAttr      = "data-lang"
)

// Extract parses raw HTML and returns one Event per container node, in
// document order. Missing sub-elements or attributes degrade to empty fields:
// target markup is volatile, so extraction never fails on its shape. The only
// error is unparseable input.
func Extract(html string, sel config.Selectors, sourceName string) ([]event.Event, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	container := orDefault(sel.Container, defaultContainer)
	titleSel := orDefault(sel.Title, defaultTitle)
	contentSel := orDefault(sel.Content, defaultContent)
	linkSel := orDefault(sel.Link, defaultLink)
	idAttr := orDefault(sel.IDAttr, defaultIDAttr)
	createdAttr := orDefault(sel.CreatedAtAttr, defaultCreatedAtAttr)
	langAttr := orDefault(sel.LangAttr, defaultLangAttr)

	var conv *md.Converter
	if sel.ContentMarkdown {
		conv = md.NewConverter("", true, nil)
	}

	var events []event.Event
	doc.Find(container).Each(func(i int, c *goquery.Selection) {
		id := c.AttrOr(idAttr, "")
		if id == "" {
			id = fmt.Sprintf("%s_%d", sourceName, i+1)
		}
		lang := c.AttrOr(langAttr, "")
		if lang == "" {
			lang = "en"
		}

		events = append(events, event.Event{
			ID:        id,
			Source:    sourceName,
			URL:       c.Find(linkSel).First().AttrOr("href", ""),
			Title:     strings.TrimSpace(c.Find(titleSel).First().Text()),
			Content:   contentText(c.Find(contentSel).First(), conv),
			CreatedAt: c.AttrOr(createdAttr, ""),
			Lang:      lang,
			Metadata:  map[string]string{},
		})
	})

	return events, nil
}

// contentText flattens the content node to plain text, or converts its inner
// HTML to markdown when the content_markdown selector option is set.
func contentText(s *goquery.Selection, conv *md.Converter) string {
	if conv != nil && s.Length() > 0 {
		html, err := s.Html()
		if err == nil {
			if text, err := conv.ConvertString(html); err == nil {
				return strings.TrimSpace(text)
			}
		}
	}
	return strings.TrimSpace(s.Text())
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
