package config

// Source type discriminators.
const (
	SourceFileHTML       = "file_html"
	SourceHTTPHTML       = "http_html"
	SourceHTTPHTMLSearch = "http_html_search"
	SourceBrowserSearch  = "browser_search"
	SourceSearchEngine   = "search_engine"
)

// Engines supported by the search_engine source.
const (
	EngineDuckDuckGo = "duckduckgo"
	EngineBrowser    = "browser"
)

// Condition types.
const (
	CondContains       = "contains"
	CondContainsAny    = "contains_any"
	CondEquals         = "equals"
	CondNotContainsAny = "not_contains_any"
)

// Config is the top-level monitor configuration document.
type Config struct {
	Language        string            `yaml:"language"`
	Rules           []Rule            `yaml:"rules"`
	Templates       map[string]string `yaml:"templates"`
	Repeat          bool              `yaml:"repeat"`
	IntervalSeconds int               `yaml:"interval_seconds"`
	MaxCycles       int               `yaml:"max_cycles"`
	MinMatches      int               `yaml:"min_matches"`
	Source          Source            `yaml:"source"`
}

// Rule binds an ordered condition list to a reply template.
type Rule struct {
	ID         string      `yaml:"id"`
	Enabled    *bool       `yaml:"enabled"`
	Conditions []Condition `yaml:"conditions"`
	Template   string      `yaml:"template"`
	TargetLang string      `yaml:"target_lang"`
}

// IsEnabled reports whether the rule participates in matching. Rules are
// enabled unless explicitly disabled.
func (r Rule) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

// Condition is one case-insensitive check against an event field. Single-value
// types use Value, list types use Values.
type Condition struct {
	Type   string   `yaml:"type"`
	Field  string   `yaml:"field"`
	Value  string   `yaml:"value"`
	Values []string `yaml:"values"`
}

// Source selects and configures one content source. Which fields apply
// depends on Type.
type Source struct {
	Type string `yaml:"type"`
	Name string `yaml:"name"`

	// file_html
	Path string `yaml:"path"`

	// http_html
	URL string `yaml:"url"`

	// http_html_search
	SearchURLTemplate string `yaml:"search_url_template"`

	// search_engine / browser_search
	Queries    []string `yaml:"queries"`
	Site       string   `yaml:"site"`
	Engine     string   `yaml:"engine"`
	MaxResults int      `yaml:"max_results"`

	// browser session
	SearchPageURL    string `yaml:"search_page_url"`
	UserDataDir      string `yaml:"user_data_dir"`
	ProfileDirectory string `yaml:"profile_directory"`
	WaitLogin        bool   `yaml:"wait_login"`
	ShowUI           bool   `yaml:"show_ui"`
	Proxy            string `yaml:"proxy"`

	Selectors Selectors `yaml:"selectors"`
}

// Selectors identify the container/title/content/link nodes and attributes
// within source markup. Empty fields fall back to generic defaults.
type Selectors struct {
	Container       string `yaml:"container"`
	Title           string `yaml:"title"`
	Content         string `yaml:"content"`
	Link            string `yaml:"link"`
	IDAttr          string `yaml:"id_attr"`
	CreatedAtAttr   string `yaml:"created_at_attr"`
	LangAttr        string `yaml:"lang_attr"`
	ContentMarkdown bool   `yaml:"content_markdown"`

	// browser_search only
	SearchInput  string `yaml:"search_input"`
	SearchButton string `yaml:"search_button"`
	WaitFor      string `yaml:"wait_for"`
}
