// Package lorem implements an offline provider that answers with lorem ipsum.
// It is useful for exercising the orchestration layer with varied,
// non-deterministic text and simulated latency.
package lorem

import (
	"context"
	"strings"
	"sync"
	"time"

	loremgen "github.com/bozaro/golorem"

	llmprovider "github.com/haowjy/meridian-playbook"
)

// Provider is a mock provider that generates lorem ipsum text.
// Used for testing and development without requiring real API keys.
type Provider struct {
	mu        sync.Mutex // golorem's generator is not safe for concurrent use
	generator *loremgen.Lorem
}

// NewProvider creates a new lorem ipsum provider.
func NewProvider() *Provider {
	return &Provider{
		generator: loremgen.New(),
	}
}

// Name returns the provider identifier.
func (p *Provider) Name() llmprovider.ProviderID {
	return llmprovider.ProviderLorem
}

// GenerateResponse returns one to three lorem paragraphs.
// Models containing "slow" wait 500ms first, honouring ctx cancellation.
func (p *Provider) GenerateResponse(ctx context.Context, req *llmprovider.GenerateRequest) (*llmprovider.GenerateResponse, error) {
	model := req.ModelOr(llmprovider.GetBackendSpec(llmprovider.ProviderLorem).DefaultModel)

	if delay := responseDelay(model); delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	text := p.generateText(paragraphCount(req.Temperature))
	return &llmprovider.GenerateResponse{
		Blocks:     []*llmprovider.Block{llmprovider.NewTextBlock(text)},
		Model:      model,
		StopReason: "end_turn",
		Raw:        text,
	}, nil
}

// responseDelay returns the simulated latency for a model name.
func responseDelay(model string) time.Duration {
	if strings.Contains(model, "slow") {
		return 500 * time.Millisecond
	}
	return 0
}

// paragraphCount maps temperature onto 1..3 paragraphs; hotter is wordier.
func paragraphCount(temperature float64) int {
	switch {
	case temperature >= 0.7:
		return 3
	case temperature >= 0.4:
		return 2
	default:
		return 1
	}
}

func (p *Provider) generateText(paragraphs int) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, 0, paragraphs)
	for i := 0; i < paragraphs; i++ {
		out = append(out, p.generator.Paragraph(3, 5))
	}
	return strings.Join(out, "\n\n")
}
