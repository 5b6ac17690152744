package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draftmon/internal/config"
)

func resultsPage(n int) string {
	page := "<html><body>"
	for i := 1; i <= n; i++ {
		page += fmt.Sprintf(`<div class="result">
			<a class="result__a" href="https://www.zhihu.com/question/%d">题目 %d</a>
			<a class="result__snippet">摘要 %d</a>
		</div>`, i, i, i)
	}
	return page + "</body></html>"
}

const legacyResultsPage = `<html><body><table>
	<tr><td class="result-link"><a href="https://example.com/question/1">old title</a></td></tr>
	<tr><td class="result-snippet">old snippet</td></tr>
</table></body></html>`

func newTestEngine(srv *httptest.Server, cfg config.Source) *duckDuckGo {
	s := newDuckDuckGo(cfg, discardLog())
	s.client = srv.Client()
	s.endpoint = srv.URL
	return s
}

func TestDuckDuckGoScopesQueryBySite(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		assert.Equal(t, "cn-zh", r.URL.Query().Get("kl"))
		assert.Equal(t, "zh_CN", r.URL.Query().Get("kad"))
		io.WriteString(w, resultsPage(2))
	}))
	defer srv.Close()

	s := newTestEngine(srv, config.Source{Site: "zhihu", Queries: []string{"写作"}, MaxResults: 10})
	events, err := s.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "site:zhihu.com 写作", gotQuery)
	require.Len(t, events, 2)
	assert.Equal(t, "zhihu_写作_1", events[0].ID)
	assert.Equal(t, "zhihu", events[0].Source)
	assert.Equal(t, "题目 1", events[0].Title)
	assert.Equal(t, "摘要 1", events[0].Content)
	assert.Equal(t, "https://www.zhihu.com/question/1", events[0].URL)
	assert.Equal(t, "写作", events[0].Metadata["query"])
}

func TestDuckDuckGoUnknownSiteIsUnscoped(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		io.WriteString(w, resultsPage(1))
	}))
	defer srv.Close()

	s := newTestEngine(srv, config.Source{Site: "duckduckgo", Queries: []string{"写作"}, MaxResults: 10})
	_, err := s.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "写作", gotQuery)
}

func TestDuckDuckGoCapsResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, resultsPage(5))
	}))
	defer srv.Close()

	s := newTestEngine(srv, config.Source{Site: "zhihu", Queries: []string{"q"}, MaxResults: 3})
	events, err := s.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestDuckDuckGoLegacyResultNodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, legacyResultsPage)
	}))
	defer srv.Close()

	s := newTestEngine(srv, config.Source{Site: "duckduckgo", Queries: []string{"q"}, MaxResults: 10})
	events, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "old title", events[0].Title)
	assert.Equal(t, "https://example.com/question/1", events[0].URL)
}

func TestDuckDuckGoZeroResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html><body>No results.</body></html>")
	}))
	defer srv.Close()

	s := newTestEngine(srv, config.Source{Site: "zhihu", Queries: []string{"写作"}, MaxResults: 10})
	events, err := s.Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
}

// A failing query is logged and skipped; remaining queries still aggregate.
func TestDuckDuckGoSkipsFailedQueries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "bad" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		io.WriteString(w, resultsPage(1))
	}))
	defer srv.Close()

	s := newTestEngine(srv, config.Source{Site: "duckduckgo", Queries: []string{"bad", "good"}, MaxResults: 10})
	events, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "good", events[0].Metadata["query"])
}
