package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"draftmon/internal/config"
	"draftmon/internal/event"
)

var sampleEvent = event.Event{
	ID:      "e1",
	Source:  "sample_forum",
	Title:   "求助 论文降重",
	Content: "有人知道怎么降重吗",
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name       string
		conditions []config.Condition
		want       bool
	}{
		{
			name:       "no conditions matches every event",
			conditions: nil,
			want:       true,
		},
		{
			name:       "contains hit",
			conditions: []config.Condition{{Type: config.CondContains, Field: "title", Value: "降重"}},
			want:       true,
		},
		{
			name:       "contains miss",
			conditions: []config.Condition{{Type: config.CondContains, Field: "title", Value: "absent"}},
			want:       false,
		},
		{
			name:       "contains is case-insensitive",
			conditions: []config.Condition{{Type: config.CondContains, Field: "source", Value: "SAMPLE"}},
			want:       true,
		},
		{
			name:       "contains_any hit on second value",
			conditions: []config.Condition{{Type: config.CondContainsAny, Field: "title", Values: []string{"nope", "求助"}}},
			want:       true,
		},
		{
			name:       "contains_any all miss",
			conditions: []config.Condition{{Type: config.CondContainsAny, Field: "title", Values: []string{"a", "b"}}},
			want:       false,
		},
		{
			name:       "equals exact lowercased",
			conditions: []config.Condition{{Type: config.CondEquals, Field: "source", Value: "Sample_Forum"}},
			want:       true,
		},
		{
			name:       "equals partial is not enough",
			conditions: []config.Condition{{Type: config.CondEquals, Field: "source", Value: "sample"}},
			want:       false,
		},
		{
			name:       "and composition short-circuits on first failure",
			conditions: []config.Condition{
				{Type: config.CondContains, Field: "title", Value: "absent"},
				{Type: config.CondContains, Field: "title", Value: "求助"},
			},
			want: false,
		},
		{
			name:       "unknown condition type fails closed",
			conditions: []config.Condition{{Type: "regex", Field: "title", Value: ".*"}},
			want:       false,
		},
		{
			name:       "unknown field reads as empty text",
			conditions: []config.Condition{{Type: config.CondContains, Field: "author", Value: "x"}},
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := config.Rule{ID: "r", Conditions: tt.conditions}
			assert.Equal(t, tt.want, Matches(sampleEvent, rule))
		})
	}
}

// not_contains_any must be the logical negation of contains_any over the same
// value set and field.
func TestNotContainsAnyIsNegationOfContainsAny(t *testing.T) {
	valueSets := [][]string{
		{"求助"},
		{"absent"},
		{"absent", "降重"},
		{"a", "b", "c"},
		{},
	}

	for _, values := range valueSets {
		pos := Matches(sampleEvent, config.Rule{Conditions: []config.Condition{
			{Type: config.CondContainsAny, Field: "title", Values: values},
		}})
		neg := Matches(sampleEvent, config.Rule{Conditions: []config.Condition{
			{Type: config.CondNotContainsAny, Field: "title", Values: values},
		}})
		assert.NotEqual(t, pos, neg, "values %v", values)
	}
}
