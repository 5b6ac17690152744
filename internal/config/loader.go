package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads, defaults and validates a monitor configuration document. The
// document may be YAML or JSON (YAML is a superset of JSON).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

// setDefaults applies default values to the configuration.
func setDefaults(cfg *Config) {
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.IntervalSeconds == 0 {
		cfg.IntervalSeconds = 900 // seconds
	}
	if cfg.MaxCycles == 0 {
		cfg.MaxCycles = 1
	}
	if cfg.Templates == nil {
		cfg.Templates = map[string]string{}
	}

	src := &cfg.Source
	if src.Engine == "" {
		src.Engine = EngineDuckDuckGo
	}
	if src.Site == "" {
		src.Site = "duckduckgo"
	}
	if src.MaxResults == 0 {
		src.MaxResults = 10
	}
}

// validate checks the per-variant required fields of the source union and the
// basic shape of the rule list.
func validate(cfg *Config) error {
	switch cfg.Source.Type {
	case SourceFileHTML:
		if cfg.Source.Path == "" {
			return fmt.Errorf("file_html source requires path")
		}
	case SourceHTTPHTML:
		if cfg.Source.URL == "" {
			return fmt.Errorf("http_html source requires url")
		}
	case SourceHTTPHTMLSearch:
		if cfg.Source.SearchURLTemplate == "" {
			return fmt.Errorf("http_html_search source requires search_url_template")
		}
	case SourceBrowserSearch:
		// search_page_url may legitimately be absent; the adapter logs and
		// yields zero events.
	case SourceSearchEngine:
		if cfg.Source.Engine != EngineDuckDuckGo && cfg.Source.Engine != EngineBrowser {
			return fmt.Errorf("unsupported search_engine engine: %s", cfg.Source.Engine)
		}
	default:
		return fmt.Errorf("unsupported source type: %s", cfg.Source.Type)
	}

	if cfg.IntervalSeconds < 0 {
		return fmt.Errorf("interval_seconds must be non-negative")
	}
	if cfg.MinMatches < 0 {
		return fmt.Errorf("min_matches must be non-negative")
	}

	for i, rule := range cfg.Rules {
		if rule.ID == "" {
			return fmt.Errorf("rule at index %d is missing an id", i)
		}
	}

	return nil
}
