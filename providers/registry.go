// Package providers assembles the default backend registry from every adapter.
package providers

import (
	"context"
	"strings"

	llmprovider "github.com/haowjy/meridian-playbook"
	"github.com/haowjy/meridian-playbook/providers/anthropic"
	"github.com/haowjy/meridian-playbook/providers/cohere"
	"github.com/haowjy/meridian-playbook/providers/dummy"
	"github.com/haowjy/meridian-playbook/providers/gemini"
	"github.com/haowjy/meridian-playbook/providers/lorem"
	"github.com/haowjy/meridian-playbook/providers/mistral"
	"github.com/haowjy/meridian-playbook/providers/openai"
	"github.com/haowjy/meridian-playbook/providers/openrouter"
)

// Options controls how the default registry is built.
type Options struct {
	// Disabled names backends whose calls always fail with
	// *llmprovider.BackendUnavailableError. Names are case-insensitive.
	Disabled []string
}

// All returns one instance of every built-in adapter.
func All() []llmprovider.Provider {
	return []llmprovider.Provider{
		dummy.NewProvider(),
		lorem.NewProvider(),
		anthropic.NewProvider(),
		anthropic.NewBedrockProvider(),
		openai.NewProvider(),
		gemini.NewProvider(),
		mistral.NewProvider(),
		cohere.NewProvider(),
		openrouter.NewProvider(),
	}
}

// NewDefaultRegistry builds the registry for all nine backends.
func NewDefaultRegistry(opts Options) *llmprovider.Registry {
	disabled := make(map[string]bool, len(opts.Disabled))
	for _, name := range opts.Disabled {
		disabled[strings.ToLower(strings.TrimSpace(name))] = true
	}

	all := All()
	for i, p := range all {
		if disabled[p.Name().String()] {
			all[i] = unavailable{id: p.Name()}
		}
	}
	return llmprovider.NewRegistry(all...)
}

// unavailable stands in for a disabled backend.
type unavailable struct {
	id llmprovider.ProviderID
}

func (u unavailable) Name() llmprovider.ProviderID {
	return u.id
}

func (u unavailable) GenerateResponse(context.Context, *llmprovider.GenerateRequest) (*llmprovider.GenerateResponse, error) {
	return nil, &llmprovider.BackendUnavailableError{
		Provider: u.id.String(),
		Hint:     llmprovider.GetBackendSpec(u.id).Setup,
	}
}
