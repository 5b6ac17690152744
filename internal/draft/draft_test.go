package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draftmon/internal/config"
	"draftmon/internal/event"
)

var sampleEvent = event.Event{
	ID:     "e1",
	Source: "zhihu",
	URL:    "https://www.zhihu.com/question/1",
	Title:  "求助 论文降重",
	Lang:   "zh",
}

func TestRenderSubstitution(t *testing.T) {
	rule := config.Rule{ID: "r1", Template: "t1"}
	templates := map[string]string{"t1": "Hi {title}, saw this on {source}: {url}"}

	d, err := Render(sampleEvent, rule, templates)
	require.NoError(t, err)

	assert.Equal(t, "Hi 求助 论文降重, saw this on zhihu: https://www.zhihu.com/question/1", d.DraftText)
	assert.Equal(t, "e1", d.EventID)
	assert.Equal(t, "r1", d.RuleID)
	assert.Equal(t, "zh", d.Lang)
}

func TestRenderFallbackTemplate(t *testing.T) {
	rule := config.Rule{ID: "r1", Template: "missing"}

	d, err := Render(sampleEvent, rule, map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, "Hello, saw your post '求助 论文降重'.", d.DraftText)
}

func TestRenderUnknownPlaceholderFails(t *testing.T) {
	rule := config.Rule{ID: "r1", Template: "t1"}
	templates := map[string]string{"t1": "Hi {title}, your score is {score}"}

	_, err := Render(sampleEvent, rule, templates)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "{score}")
}

func TestRenderLanguageResolution(t *testing.T) {
	templates := map[string]string{"t": "x"}

	d, err := Render(sampleEvent, config.Rule{ID: "r", Template: "t", TargetLang: "ja"}, templates)
	require.NoError(t, err)
	assert.Equal(t, "ja", d.Lang, "rule target_lang overrides event lang")

	noLang := sampleEvent
	noLang.Lang = ""
	d, err = Render(noLang, config.Rule{ID: "r", Template: "t"}, templates)
	require.NoError(t, err)
	assert.Equal(t, "en", d.Lang, "missing languages default to en")
}

func TestRenderIsDeterministic(t *testing.T) {
	rule := config.Rule{ID: "r1", Template: "t1"}
	templates := map[string]string{"t1": "{title} {content} {url} {source}"}

	first, err := Render(sampleEvent, rule, templates)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Render(sampleEvent, rule, templates)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
