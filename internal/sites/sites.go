package sites

import (
	"strings"

	"draftmon/internal/config"
)

// SearchDefaults carries the built-in search page and selector set for one
// supported site, used by the browser engine when the configuration does not
// supply its own.
type SearchDefaults struct {
	SearchPageURL string
	Selectors     config.Selectors
}

var registry = map[string]SearchDefaults{
	"zhihu": {
		SearchPageURL: "https://www.zhihu.com/search?q={query}",
		Selectors: config.Selectors{
			Container:   "div.Card.SearchResult",
			Title:       ".ContentItem-title",
			Content:     ".RichContent-inner",
			Link:        ".ContentItem-title a",
			IDAttr:      "data-id",
			SearchInput: "input.SearchBar-input",
			WaitFor:     ".Card.SearchResult",
		},
	},
	"csdn": {
		SearchPageURL: "https://so.csdn.net/so/search?q={query}",
		Selectors: config.Selectors{
			Container:    "div.result-item",
			Title:        ".result-title",
			Content:      ".result-desc",
			Link:         ".result-title a",
			IDAttr:       "data-id",
			SearchInput:  "input#keyword",
			SearchButton: "button[type='submit']",
			WaitFor:      "div.result-item",
		},
	},
	"tieba": {
		SearchPageURL: "https://tieba.baidu.com/f?ie=utf-8&kw={query}",
		Selectors: config.Selectors{
			Container:    "div.threadlist_li_right",
			Title:        "a.j_th_tit",
			Content:      "div.threadlist_abs",
			Link:         "a.j_th_tit",
			IDAttr:       "data-tid",
			SearchInput:  "input.tbui_aside_search_input",
			SearchButton: "a.search_btn",
			WaitFor:      "div.threadlist_li_right",
		},
	},
	"reddit": {
		SearchPageURL: "https://www.reddit.com/search/?q={query}",
		Selectors: config.Selectors{
			Container:   "div.Search__results article",
			Title:       "h3",
			Content:     "div[data-click-id='body']",
			Link:        "a[data-click-id='body']",
			SearchInput: "input#header-search-bar",
			WaitFor:     "div.Search__results article",
		},
	},
}

// Defaults returns the built-in browser-search defaults for site, if any.
func Defaults(site string) (SearchDefaults, bool) {
	d, ok := registry[strings.ToLower(site)]
	return d, ok
}

// Per-site domains for search-engine scoping via the site: qualifier.
var domains = map[string]string{
	"zhihu":  "zhihu.com",
	"csdn":   "csdn.net",
	"tieba":  "tieba.baidu.com",
	"reddit": "reddit.com",
}

// Domain maps a site name to the domain used for search scoping; an empty
// result means the search runs unscoped.
func Domain(site string) string {
	return domains[strings.ToLower(site)]
}
