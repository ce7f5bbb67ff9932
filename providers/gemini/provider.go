// Package gemini implements Google's Gemini generateContent API over net/http.
package gemini

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	llmprovider "github.com/haowjy/meridian-playbook"
	"github.com/haowjy/meridian-playbook/internal/httpclient"
)

type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text,omitempty"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	ModelVersion string `json:"modelVersion"`
}

// Provider implements llmprovider.Provider for Gemini.
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

// NewProvider creates a Gemini provider. The API key is read from
// GOOGLE_API_KEY, falling back to GEMINI_API_KEY, on every call.
func NewProvider(opts ...Option) *Provider {
	p := &Provider{httpClient: httpclient.New()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider identifier.
func (p *Provider) Name() llmprovider.ProviderID {
	return llmprovider.ProviderGemini
}

// GenerateResponse sends the prompt as a single user turn.
func (p *Provider) GenerateResponse(ctx context.Context, req *llmprovider.GenerateRequest) (*llmprovider.GenerateResponse, error) {
	spec := llmprovider.GetBackendSpec(llmprovider.ProviderGemini)

	apiKey, err := spec.LookupCredential()
	if err != nil {
		return nil, err
	}

	baseURL := p.baseURL
	if baseURL == "" {
		baseURL = strings.TrimRight(spec.BaseURL, "/")
	}
	model := req.ModelOr(spec.DefaultModel)
	endpoint := baseURL + "/models/" + url.PathEscape(model) + ":generateContent"

	body := &generateContentRequest{
		Contents:         []content{{Role: llmprovider.RoleUser, Parts: []part{{Text: req.Prompt}}}},
		GenerationConfig: generationConfig{Temperature: req.Temperature},
	}

	data, err := httpclient.PostJSON(ctx, p.httpClient, llmprovider.ProviderGemini, endpoint, body,
		httpclient.Header{Key: "x-goog-api-key", Value: apiKey})
	if err != nil {
		return nil, err
	}

	var resp generateContentResponse
	if err := httpclient.Decode(llmprovider.ProviderGemini, data, &resp); err != nil {
		return nil, err
	}

	out := &llmprovider.GenerateResponse{Model: model, Raw: string(data)}
	if resp.ModelVersion != "" {
		out.Model = resp.ModelVersion
	}
	if len(resp.Candidates) == 0 {
		return out, nil
	}
	candidate := resp.Candidates[0]
	out.StopReason = candidate.FinishReason
	for _, pt := range candidate.Content.Parts {
		if pt.Text != "" {
			out.Blocks = append(out.Blocks, llmprovider.NewTextBlock(pt.Text))
		}
	}
	return out, nil
}
