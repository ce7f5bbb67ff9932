// Package openai implements the OpenAI chat completions API over net/http.
// The same wire format serves every OpenAI-compatible backend (Mistral,
// OpenRouter), which construct their providers with NewCompatible.
package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	llmprovider "github.com/haowjy/meridian-playbook"
	"github.com/haowjy/meridian-playbook/internal/httpclient"
)

// Provider implements the llmprovider.Provider interface for OpenAI-compatible
// chat completion endpoints.
type Provider struct {
	id         llmprovider.ProviderID
	baseURL    string
	httpClient *http.Client
	headers    []httpclient.Header
}

// Option configures a Provider
type Option func(*Provider)

// WithBaseURL overrides the base URL from backends.yaml.
func WithBaseURL(baseURL string) Option {
	return func(p *Provider) { p.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithHTTPClient sets the HTTP client used for outbound requests.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) { p.httpClient = client }
}

// WithHeader adds a static header to every request.
func WithHeader(key, value string) Option {
	return func(p *Provider) { p.headers = append(p.headers, httpclient.Header{Key: key, Value: value}) }
}

// NewProvider creates a provider for OpenAI itself.
func NewProvider(opts ...Option) *Provider {
	return NewCompatible(llmprovider.ProviderOpenAI, opts...)
}

// NewCompatible creates a provider for any backend speaking the OpenAI chat
// completions format. Credentials, default model and base URL come from the
// backends.yaml entry for id.
func NewCompatible(id llmprovider.ProviderID, opts ...Option) *Provider {
	p := &Provider{
		id:         id,
		httpClient: httpclient.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider identifier.
func (p *Provider) Name() llmprovider.ProviderID {
	return p.id
}

// GenerateResponse generates a non-streaming chat completion.
func (p *Provider) GenerateResponse(ctx context.Context, req *llmprovider.GenerateRequest) (*llmprovider.GenerateResponse, error) {
	spec := llmprovider.GetBackendSpec(p.id)

	apiKey, err := spec.LookupCredential()
	if err != nil {
		return nil, err
	}

	baseURL := p.baseURL
	if baseURL == "" {
		baseURL = strings.TrimRight(spec.BaseURL, "/")
	}

	temperature := req.Temperature
	chatReq := &ChatCompletionRequest{
		Model:       req.ModelOr(spec.DefaultModel),
		Messages:    []Message{{Role: llmprovider.RoleUser, Content: req.Prompt}},
		Temperature: &temperature,
		Stream:      false,
	}

	headers := append([]httpclient.Header{{Key: "Authorization", Value: "Bearer " + apiKey}}, p.headers...)
	body, err := httpclient.PostJSON(ctx, p.httpClient, p.id, baseURL+"/chat/completions", chatReq, headers...)
	if err != nil {
		return nil, err
	}

	var chatResp ChatCompletionResponse
	if err := httpclient.Decode(p.id, body, &chatResp); err != nil {
		return nil, err
	}

	return convertFromChatCompletionResponse(&chatResp, body), nil
}

// convertFromChatCompletionResponse converts the first choice into blocks.
// String content becomes one text block; array content keeps its text parts
// in order; anything else leaves the response to fall back to the raw body.
func convertFromChatCompletionResponse(resp *ChatCompletionResponse, raw []byte) *llmprovider.GenerateResponse {
	out := &llmprovider.GenerateResponse{
		Model: resp.Model,
		Raw:   string(raw),
	}
	if len(resp.Choices) == 0 {
		return out
	}

	choice := resp.Choices[0]
	out.StopReason = choice.FinishReason
	out.Blocks = convertContent(choice.Message.Content)
	return out
}

func convertContent(content json.RawMessage) []*llmprovider.Block {
	if len(content) == 0 || string(content) == "null" {
		return nil
	}

	var text string
	if err := json.Unmarshal(content, &text); err == nil {
		return []*llmprovider.Block{llmprovider.NewTextBlock(text)}
	}

	var parts []ContentPart
	if err := json.Unmarshal(content, &parts); err != nil {
		return nil
	}
	blocks := make([]*llmprovider.Block, 0, len(parts))
	for _, part := range parts {
		if part.Type == "text" {
			blocks = append(blocks, llmprovider.NewTextBlock(part.Text))
			continue
		}
		blocks = append(blocks, &llmprovider.Block{BlockType: llmprovider.BlockTypeOther})
	}
	return blocks
}
