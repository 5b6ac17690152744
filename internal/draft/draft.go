package draft

import (
	"fmt"
	"regexp"

	"draftmon/internal/config"
	"draftmon/internal/event"
)

// fallbackTemplate is used when a rule references an unknown template id.
const fallbackTemplate = "Hello, saw your post '{title}'."

var placeholderRe = regexp.MustCompile(`\{(\w+)\}`)

// Render instantiates the rule's template with the event's fields and stamps
// the result with the rule id, event id and resolved language. Placeholders
// outside {title} {content} {url} {source} are a render error: a broken
// template must fail the run instead of shipping partial drafts.
func Render(ev event.Event, rule config.Rule, templates map[string]string) (event.Draft, error) {
	tpl, ok := templates[rule.Template]
	if !ok {
		tpl = fallbackTemplate
	}

	fields := map[string]string{
		"title":   ev.Title,
		"content": ev.Content,
		"url":     ev.URL,
		"source":  ev.Source,
	}

	var renderErr error
	text := placeholderRe.ReplaceAllStringFunc(tpl, func(m string) string {
		name := m[1 : len(m)-1]
		value, ok := fields[name]
		if !ok {
			renderErr = fmt.Errorf("unknown placeholder {%s} in template %q", name, rule.Template)
			return m
		}
		return value
	})
	if renderErr != nil {
		return event.Draft{}, renderErr
	}

	lang := rule.TargetLang
	if lang == "" {
		lang = ev.Lang
	}
	if lang == "" {
		lang = "en"
	}

	return event.Draft{
		EventID:   ev.ID,
		RuleID:    rule.ID,
		Lang:      lang,
		DraftText: text,
	}, nil
}
