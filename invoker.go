package llmprovider

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"
)

// Invoker is the single prompt-in / text-out contract that orchestration
// patterns and techniques program against. It carries no backend identity.
type Invoker interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// InvokerFunc adapts an ordinary function to the Invoker interface.
type InvokerFunc func(ctx context.Context, prompt string) (string, error)

// Invoke calls f(ctx, prompt).
func (f InvokerFunc) Invoke(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// BoundInvoker is a Provider closed over a fixed model and temperature.
// Neither changes after Bind.
type BoundInvoker struct {
	provider    Provider
	model       string
	temperature float64
	logger      *slog.Logger
}

// BindOption configures a BoundInvoker
type BindOption func(*BoundInvoker)

// WithLogger sets the logger used for per-call debug records and warnings.
func WithLogger(logger *slog.Logger) BindOption {
	return func(b *BoundInvoker) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Bind fixes model and temperature for p. An empty model selects the
// backend's default. Validation warnings for the pair are logged once here.
func Bind(p Provider, model string, temperature float64, opts ...BindOption) *BoundInvoker {
	b := &BoundInvoker{
		provider:    p,
		model:       model,
		temperature: temperature,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}

	probe := &GenerateRequest{Model: model, Temperature: temperature}
	for _, w := range GetValidationWarnings(p.Name(), probe) {
		level := slog.LevelWarn
		if w.Severity == SeverityInfo {
			level = slog.LevelInfo
		}
		b.logger.Log(context.Background(), level, w.Message,
			"provider", p.Name(), "code", w.Code, "field", w.Field)
	}
	return b
}

// Invoke sends prompt to the bound provider and returns the extracted text.
// Provider errors are returned unchanged.
func (b *BoundInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	req := &GenerateRequest{
		Prompt:      prompt,
		Model:       b.model,
		Temperature: b.temperature,
	}

	start := time.Now()
	text, err := Generate(ctx, b.provider, req)
	b.logger.LogAttrs(ctx, slog.LevelDebug, "invoke",
		slog.String("provider", b.provider.Name().String()),
		slog.String("model", b.model),
		slog.Int("prompt_chars", utf8.RuneCountInString(prompt)),
		slog.Duration("duration", time.Since(start)),
		slog.Bool("ok", err == nil),
	)
	if err != nil {
		return "", err
	}
	return text, nil
}

// Provider returns the bound provider.
func (b *BoundInvoker) Provider() Provider { return b.provider }

// Model returns the bound model ("" means backend default).
func (b *BoundInvoker) Model() string { return b.model }

// Temperature returns the bound temperature.
func (b *BoundInvoker) Temperature() float64 { return b.temperature }
