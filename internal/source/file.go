package source

import (
	"context"
	"fmt"
	"os"

	"draftmon/internal/config"
	"draftmon/internal/event"
	"draftmon/internal/extractor"
	"draftmon/internal/progress"
)

func init() {
	Register(config.SourceFileHTML, newFileHTML)
}

// fileHTML reads a local HTML file and extracts events with the configured
// selectors (or the generic defaults).
type fileHTML struct {
	cfg config.Source
	log *progress.Logger
}

func newFileHTML(cfg config.Source, log *progress.Logger) (Source, error) {
	return &fileHTML{cfg: cfg, log: log}, nil
}

func (s *fileHTML) Name() string {
	return nameOr(s.cfg.Name, "sample_forum")
}

func (s *fileHTML) Fetch(ctx context.Context) ([]event.Event, error) {
	s.log.Printf("[source:file_html] reading local file %s", s.cfg.Path)

	data, err := os.ReadFile(s.cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read HTML file: %w", err)
	}
	return extractor.Extract(string(data), s.cfg.Selectors, s.Name())
}
