package techniques

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	llmprovider "github.com/haowjy/meridian-playbook"
	"github.com/haowjy/meridian-playbook/patterns"
)

// Report is the outcome of one technique run.
type Report struct {
	ID       int
	Name     string
	Output   string
	Err      error
	Duration time.Duration
}

// Failed reports whether the technique ended in an error.
func (r Report) Failed() bool {
	return r.Err != nil
}

// Text returns the output, or "[ERROR] <message>" for a failed run.
func (r Report) Text() string {
	if r.Err != nil {
		return "[ERROR] " + r.Err.Error()
	}
	return r.Output
}

// RunOption configures RunSelected.
type RunOption func(*runConfig)

type runConfig struct {
	concurrency int
	fanout      int
	logger      *slog.Logger
}

// WithConcurrency runs up to n techniques at once. The default is 1.
func WithConcurrency(n int) RunOption {
	return func(c *runConfig) { c.concurrency = n }
}

// WithFanout lets vote and branch recipes issue up to n calls at once.
func WithFanout(n int) RunOption {
	return func(c *runConfig) { c.fanout = n }
}

// WithRunLogger sets the logger for per-technique records.
func WithRunLogger(logger *slog.Logger) RunOption {
	return func(c *runConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// patternOptions returns the options handed to every recipe.
func (c runConfig) patternOptions() []patterns.Option {
	if c.fanout > 0 {
		return []patterns.Option{patterns.WithMaxConcurrency(c.fanout)}
	}
	return nil
}

// Run executes one entry, passing opts to its orchestration pattern. Errors
// and panics from the recipe are captured in the report and never escape.
func Run(ctx context.Context, inv llmprovider.Invoker, entry Entry, opts ...patterns.Option) (report Report) {
	report = Report{ID: entry.ID, Name: entry.Name}
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			report.Output = ""
			report.Err = fmt.Errorf("technique %d panicked: %v", entry.ID, r)
		}
		report.Duration = time.Since(start)
	}()

	report.Output, report.Err = entry.Recipe(ctx, inv, opts...)
	return report
}

// RunSelected runs every entry the selector names. A failing technique never
// stops the others, and reports come back in ascending id order whatever the
// concurrency.
func RunSelected(ctx context.Context, inv llmprovider.Invoker, sel Selector, opts ...RunOption) ([]Report, error) {
	entries, err := sel.Entries()
	if err != nil {
		return nil, err
	}

	cfg := runConfig{concurrency: 1, logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.concurrency <= 0 {
		cfg.concurrency = 1
	}
	patternOpts := cfg.patternOptions()

	reports := make([]Report, len(entries))
	// Run never returns an error, so the group is used only for its limit.
	var g errgroup.Group
	g.SetLimit(cfg.concurrency)
	for i, entry := range entries {
		g.Go(func() error {
			reports[i] = Run(ctx, inv, entry, patternOpts...)
			logReport(ctx, cfg.logger, reports[i])
			return nil
		})
	}
	_ = g.Wait()
	return reports, nil
}

func logReport(ctx context.Context, logger *slog.Logger, r Report) {
	if r.Err != nil {
		logger.WarnContext(ctx, "technique failed",
			"id", r.ID, "name", r.Name, "duration", r.Duration, "error", r.Err)
		return
	}
	logger.InfoContext(ctx, "technique finished",
		"id", r.ID, "name", r.Name, "duration", r.Duration, "output_chars", utf8.RuneCountInString(r.Output))
}
