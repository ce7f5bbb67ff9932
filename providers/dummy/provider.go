// Package dummy implements a deterministic offline provider. It needs no
// credential and no network, so every technique can run in tests and demos.
package dummy

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	llmprovider "github.com/haowjy/meridian-playbook"
)

// ExcerptLength is how many characters of the prompt are echoed back.
const ExcerptLength = 240

// Provider echoes the request back in a fixed format.
type Provider struct{}

// NewProvider creates a new dummy provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Name returns the provider identifier.
func (p *Provider) Name() llmprovider.ProviderID {
	return llmprovider.ProviderDummy
}

// GenerateResponse always succeeds. The same prompt, model and temperature
// always produce byte-identical text.
func (p *Provider) GenerateResponse(_ context.Context, req *llmprovider.GenerateRequest) (*llmprovider.GenerateResponse, error) {
	model := req.ModelOr(llmprovider.GetBackendSpec(llmprovider.ProviderDummy).DefaultModel)
	if model == "" {
		model = "dummy-model"
	}

	text := Render(req.Prompt, model, req.Temperature)
	return &llmprovider.GenerateResponse{
		Blocks:     []*llmprovider.Block{llmprovider.NewTextBlock(text)},
		Model:      model,
		StopReason: "end_turn",
		Raw:        text,
	}, nil
}

// Render builds the dummy response text.
func Render(prompt, model string, temperature float64) string {
	return fmt.Sprintf("[DUMMY RESPONSE]\nModel=%s Temp=%s\nPrompt (truncated): %s...",
		model, formatTemperature(temperature), Excerpt(prompt))
}

// formatTemperature renders t in its shortest form, keeping one decimal
// place for whole numbers (1 renders as "1.0").
func formatTemperature(t float64) string {
	s := strconv.FormatFloat(t, 'g', -1, 64)
	if strings.ContainsAny(s, ".eIN") {
		return s
	}
	return s + ".0"
}

// Excerpt returns the first ExcerptLength characters (code points) of s.
func Excerpt(s string) string {
	runes := []rune(s)
	if len(runes) <= ExcerptLength {
		return s
	}
	return string(runes[:ExcerptLength])
}
