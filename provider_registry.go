package llmprovider

import (
	"sort"
	"strings"
)

// ProviderID represents a unique provider identifier.
// Using a typed constant prevents typos and provides compile-time safety.
type ProviderID string

// Known provider identifiers
const (
	// ProviderDummy is the deterministic offline provider
	ProviderDummy ProviderID = "dummy"

	// ProviderLorem is the mock Lorem provider for load and UI testing
	ProviderLorem ProviderID = "lorem"

	// ProviderAnthropic is Anthropic's Claude API
	ProviderAnthropic ProviderID = "anthropic"

	// ProviderBedrock is Claude served through AWS Bedrock
	ProviderBedrock ProviderID = "bedrock"

	// ProviderOpenAI is OpenAI's chat completions API
	ProviderOpenAI ProviderID = "openai"

	// ProviderGemini is Google's Gemini API
	ProviderGemini ProviderID = "gemini"

	// ProviderMistral is Mistral's chat completions API
	ProviderMistral ProviderID = "mistral"

	// ProviderCohere is Cohere's v2 chat API
	ProviderCohere ProviderID = "cohere"

	// ProviderOpenRouter is OpenRouter's unified API
	ProviderOpenRouter ProviderID = "openrouter"
)

// String returns the string representation of the provider ID
func (p ProviderID) String() string {
	return string(p)
}

// IsValid returns true if the provider ID is a known provider
func (p ProviderID) IsValid() bool {
	switch p {
	case ProviderDummy, ProviderLorem, ProviderAnthropic, ProviderBedrock,
		ProviderOpenAI, ProviderGemini, ProviderMistral, ProviderCohere, ProviderOpenRouter:
		return true
	default:
		return false
	}
}

// Registry maps backend names to providers.
// It is filled once by NewRegistry and never mutated afterwards, so it is
// safe for concurrent readers without locking.
type Registry struct {
	providers map[string]Provider
	names     []string
}

// NewRegistry builds a registry from the given providers, keyed by their
// lower-cased Name(). A later provider with the same name replaces an earlier one.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		r.providers[strings.ToLower(p.Name().String())] = p
	}
	r.names = make([]string, 0, len(r.providers))
	for name := range r.providers {
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	return r
}

// Resolve returns the provider registered under name (case-insensitive).
func (r *Registry) Resolve(name string) (Provider, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if p, ok := r.providers[key]; ok {
		return p, nil
	}
	return nil, &UnknownBackendError{Name: name, Known: r.Names()}
}

// Names returns every registered name, sorted.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
