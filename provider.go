package llmprovider

import (
	"context"
)

// Provider defines the interface that every generation backend must implement.
// This abstraction lets the orchestration layer run against Anthropic, OpenAI,
// Gemini, Mistral, Cohere or an offline mock without knowing which one is in use.
//
// Types used by this interface:
//   - GenerateRequest: defined in request.go
//   - GenerateResponse: defined in response.go
type Provider interface {
	// GenerateResponse issues exactly one blocking generation call.
	// Implementations must not retry. Failures are reported as
	// *MissingCredentialError, *BackendUnavailableError or *BackendError.
	GenerateResponse(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)

	// Name returns the provider name (e.g., "anthropic", "openai", "dummy")
	Name() ProviderID
}

// Generate runs a single request against p and returns the extracted text.
func Generate(ctx context.Context, p Provider, req *GenerateRequest) (string, error) {
	resp, err := p.GenerateResponse(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
