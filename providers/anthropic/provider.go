package anthropic

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	llmprovider "github.com/haowjy/meridian-playbook"
)

// defaultMaxTokens is used when backends.yaml sets no max_tokens.
const defaultMaxTokens = 1200

// connectFunc returns the authentication options for one call. It reports a
// missing credential or an unusable client as typed errors.
type connectFunc func(ctx context.Context, spec *llmprovider.BackendSpec) ([]option.RequestOption, error)

// Provider implements the llmprovider.Provider interface for Anthropic (Claude)
// models, either directly or through AWS Bedrock.
type Provider struct {
	id        llmprovider.ProviderID
	connect   connectFunc
	translate func(model string) string
	options   []option.RequestOption
}

// NewProvider creates a provider for the Anthropic Messages API.
// The API key is read from ANTHROPIC_API_KEY on every call. Extra options
// (e.g. option.WithBaseURL) are applied after authentication.
func NewProvider(opts ...option.RequestOption) *Provider {
	return &Provider{
		id:        llmprovider.ProviderAnthropic,
		connect:   connectAPIKey,
		translate: func(model string) string { return model },
		options:   opts,
	}
}

// Name returns the provider identifier.
func (p *Provider) Name() llmprovider.ProviderID {
	return p.id
}

func connectAPIKey(_ context.Context, spec *llmprovider.BackendSpec) ([]option.RequestOption, error) {
	apiKey, err := spec.LookupCredential()
	if err != nil {
		return nil, err
	}
	return []option.RequestOption{option.WithAPIKey(apiKey)}, nil
}

// GenerateResponse generates a response from Claude with a single API call.
func (p *Provider) GenerateResponse(ctx context.Context, req *llmprovider.GenerateRequest) (*llmprovider.GenerateResponse, error) {
	spec := llmprovider.GetBackendSpec(p.id)

	authOpts, err := p.connect(ctx, spec)
	if err != nil {
		return nil, err
	}

	// The SDK retries by default; one invocation must be one call.
	opts := append(authOpts, option.WithMaxRetries(0))
	opts = append(opts, p.options...)
	client := anthropic.NewClient(opts...)

	maxTokens := spec.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	apiParams := buildMessageParams(req, p.translate(req.ModelOr(spec.DefaultModel)), maxTokens)

	message, err := client.Messages.New(ctx, apiParams)
	if err != nil {
		return nil, p.wrapError(err)
	}

	return convertFromAnthropicResponse(message), nil
}

// wrapError maps SDK failures to *llmprovider.BackendError.
func (p *Provider) wrapError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return &llmprovider.BackendError{
			Provider:   p.id.String(),
			StatusCode: apiErr.StatusCode,
			Message:    apiErr.Error(),
			Err:        err,
		}
	}
	return &llmprovider.BackendError{
		Provider: p.id.String(),
		Message:  fmt.Sprintf("anthropic API call failed: %v", err),
		Err:      err,
	}
}
