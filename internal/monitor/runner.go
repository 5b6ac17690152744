package monitor

import (
	"context"
	"errors"
	"time"

	"draftmon/internal/config"
	"draftmon/internal/draft"
	"draftmon/internal/event"
	"draftmon/internal/filter"
	"draftmon/internal/matcher"
	"draftmon/internal/output"
	"draftmon/internal/progress"
	"draftmon/internal/source"
)

// fetchError marks adapter fetch failures, which abort the current cycle but
// keep the scheduler running.
type fetchError struct {
	err error
}

func (e *fetchError) Error() string { return e.err.Error() }
func (e *fetchError) Unwrap() error { return e.err }

// Runner drives the repeated fetch -> filter -> match -> render -> persist
// passes of the monitor.
type Runner struct {
	cfg        *config.Config
	outputPath string
	log        *progress.Logger
	sleep      func(time.Duration)
}

// NewRunner creates a runner writing artifacts to outputPath and progress
// lines to log.
func NewRunner(cfg *config.Config, outputPath string, log *progress.Logger) *Runner {
	return &Runner{
		cfg:        cfg,
		outputPath: outputPath,
		log:        log,
		sleep:      time.Sleep,
	}
}

// Run executes cycles until max_cycles is reached (or once when repeat is off),
// sleeping interval_seconds between cycles. A fetch failure aborts the cycle
// without writing an artifact and scheduling continues; configuration and
// render errors are fatal. If no cycle ever succeeds, the last error is
// returned so the process exits non-zero.
func (r *Runner) Run(ctx context.Context) error {
	var lastErr error
	succeeded := false

	for cycle := 1; ; cycle++ {
		if err := r.runCycle(ctx, cycle); err != nil {
			var fe *fetchError
			if !errors.As(err, &fe) {
				return err
			}
			r.log.Printf("[source:%s] cycle %d fetch failed: %v", r.cfg.Source.Type, cycle, fe.Unwrap())
			lastErr = err
		} else {
			succeeded = true
		}

		if !r.cfg.Repeat || cycle >= r.cfg.MaxCycles {
			break
		}
		r.sleep(time.Duration(r.cfg.IntervalSeconds) * time.Second)
	}

	if !succeeded {
		return lastErr
	}
	return nil
}

func (r *Runner) runCycle(ctx context.Context, cycle int) error {
	src, err := source.New(r.cfg.Source, r.log)
	if err != nil {
		return err
	}

	events, err := src.Fetch(ctx)
	if err != nil {
		return &fetchError{err: err}
	}

	kept := filter.Run(events)
	briefs := make([]event.Brief, 0, len(kept))
	drafts := make([]event.Draft, 0)
	matched := 0

	for _, ev := range kept {
		briefs = append(briefs, ev.Brief())
		for _, rule := range r.cfg.Rules {
			if !rule.IsEnabled() {
				continue
			}
			if !matcher.Matches(ev, rule) {
				continue
			}
			d, err := draft.Render(ev, rule, r.cfg.Templates)
			if err != nil {
				return err
			}
			matched++
			drafts = append(drafts, d)
		}
	}

	out := event.CycleOutput{
		Language:      r.cfg.Language,
		Cycle:         cycle,
		TotalEvents:   len(events),
		MatchedEvents: matched,
		Events:        briefs,
		Drafts:        drafts,
	}
	if err := output.Write(r.outputPath, out); err != nil {
		return err
	}

	status := "[OK]"
	if matched < r.cfg.MinMatches {
		status = "[WARN]"
	}
	r.log.Printf("%s cycle %d: events=%d matched=%d output=%s", status, cycle, len(events), matched, r.outputPath)
	return nil
}
