// Package cohere implements Cohere's v2 chat API over net/http.
package cohere

import (
	"context"
	"net/http"
	"strings"

	llmprovider "github.com/haowjy/meridian-playbook"
	"github.com/haowjy/meridian-playbook/internal/httpclient"
)

type chatRequest struct {
	Model       string                `json:"model"`
	Messages    []llmprovider.Message `json:"messages"`
	Temperature float64               `json:"temperature"`
}

type chatResponse struct {
	ID           string `json:"id"`
	FinishReason string `json:"finish_reason"`
	Message      struct {
		Role    string `json:"role"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"message"`
}

// Provider implements llmprovider.Provider for Cohere.
type Provider struct {
	baseURL    string
	httpClient *http.Client
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

// NewProvider creates a Cohere provider. The API key is read from
// COHERE_API_KEY on every call.
func NewProvider(opts ...Option) *Provider {
	p := &Provider{httpClient: httpclient.New()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider identifier.
func (p *Provider) Name() llmprovider.ProviderID {
	return llmprovider.ProviderCohere
}

// GenerateResponse sends the prompt as a single user message.
func (p *Provider) GenerateResponse(ctx context.Context, req *llmprovider.GenerateRequest) (*llmprovider.GenerateResponse, error) {
	spec := llmprovider.GetBackendSpec(llmprovider.ProviderCohere)

	apiKey, err := spec.LookupCredential()
	if err != nil {
		return nil, err
	}

	baseURL := p.baseURL
	if baseURL == "" {
		baseURL = strings.TrimRight(spec.BaseURL, "/")
	}
	model := req.ModelOr(spec.DefaultModel)

	body := &chatRequest{
		Model:       model,
		Messages:    []llmprovider.Message{{Role: llmprovider.RoleUser, Content: req.Prompt}},
		Temperature: req.Temperature,
	}
	data, err := httpclient.PostJSON(ctx, p.httpClient, llmprovider.ProviderCohere, baseURL+"/chat", body,
		httpclient.Header{Key: "Authorization", Value: "Bearer " + apiKey})
	if err != nil {
		return nil, err
	}

	var resp chatResponse
	if err := httpclient.Decode(llmprovider.ProviderCohere, data, &resp); err != nil {
		return nil, err
	}

	out := &llmprovider.GenerateResponse{
		Model:      model,
		StopReason: resp.FinishReason,
		Raw:        string(data),
	}
	for _, item := range resp.Message.Content {
		if item.Type == "text" {
			out.Blocks = append(out.Blocks, llmprovider.NewTextBlock(item.Text))
		}
	}
	return out, nil
}
