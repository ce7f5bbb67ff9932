// Package openrouter provides OpenRouter's unified API. OpenRouter proxies
// requests to many upstream providers using the OpenAI-compatible format,
// with models named "provider/model" (e.g. "anthropic/claude-3.5-sonnet").
package openrouter

import (
	llmprovider "github.com/haowjy/meridian-playbook"
	"github.com/haowjy/meridian-playbook/providers/openai"
)

// Attribution headers OpenRouter uses to identify the calling app.
const (
	appURL   = "https://github.com/haowjy/meridian-playbook"
	appTitle = "Meridian Playbook"
)

// NewProvider creates a new OpenRouter provider. The API key is read from
// OPENROUTER_API_KEY on every call.
func NewProvider(opts ...openai.Option) *openai.Provider {
	base := []openai.Option{
		openai.WithHeader("HTTP-Referer", appURL),
		openai.WithHeader("X-Title", appTitle),
	}
	return openai.NewCompatible(llmprovider.ProviderOpenRouter, append(base, opts...)...)
}
