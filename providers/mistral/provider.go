// Package mistral provides Mistral's chat completions API, which follows the
// OpenAI wire format.
package mistral

import (
	llmprovider "github.com/haowjy/meridian-playbook"
	"github.com/haowjy/meridian-playbook/providers/openai"
)

// NewProvider creates a new Mistral provider. The API key is read from
// MISTRAL_API_KEY on every call.
func NewProvider(opts ...openai.Option) *openai.Provider {
	return openai.NewCompatible(llmprovider.ProviderMistral, opts...)
}
