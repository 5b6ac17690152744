package source

import (
	"context"
	"fmt"

	"draftmon/internal/config"
	"draftmon/internal/event"
	"draftmon/internal/progress"
)

// Source produces one batch of events per monitoring cycle.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]event.Event, error)
}

// Factory builds a Source from its configuration.
type Factory func(cfg config.Source, log *progress.Logger) (Source, error)

var registry = map[string]Factory{}

// Register binds a source type string to its factory. Adapters register
// themselves in init.
func Register(sourceType string, f Factory) {
	registry[sourceType] = f
}

// New dispatches on the configured source type.
func New(cfg config.Source, log *progress.Logger) (Source, error) {
	f, ok := registry[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("unsupported source type: %s", cfg.Type)
	}
	return f(cfg, log)
}

// nameOr returns the configured source name, or the adapter's default tag.
func nameOr(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}

// tagQuery records the originating query on every event of a batch.
func tagQuery(events []event.Event, query string) {
	for i := range events {
		events[i].Metadata["query"] = query
	}
}
