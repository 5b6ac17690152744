package matcher

import (
	"strings"

	"draftmon/internal/config"
	"draftmon/internal/event"
)

// Matches evaluates the rule's conditions against the event in declared order
// with AND semantics, short-circuiting on the first failing condition. A rule
// with no conditions matches every event. Unknown condition types fail the
// rule; unknown fields read as empty text. All comparisons are
// case-insensitive.
func Matches(ev event.Event, rule config.Rule) bool {
	fields := map[string]string{
		"title":   strings.ToLower(ev.Title),
		"content": strings.ToLower(ev.Content),
		"source":  strings.ToLower(ev.Source),
	}

	for _, cond := range rule.Conditions {
		text := fields[cond.Field]

		switch cond.Type {
		case config.CondContains:
			if !strings.Contains(text, strings.ToLower(cond.Value)) {
				return false
			}
		case config.CondContainsAny:
			if !containsAny(text, cond.Values) {
				return false
			}
		case config.CondEquals:
			if text != strings.ToLower(cond.Value) {
				return false
			}
		case config.CondNotContainsAny:
			if containsAny(text, cond.Values) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func containsAny(text string, values []string) bool {
	for _, v := range values {
		if strings.Contains(text, strings.ToLower(v)) {
			return true
		}
	}
	return false
}
