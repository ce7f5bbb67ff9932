package llmprovider

import "context"

// Test helper functions shared across test files

func stringPtr(s string) *string {
	return &s
}

// stubProvider records requests and answers from a fixed response or error.
type stubProvider struct {
	id       ProviderID
	resp     *GenerateResponse
	err      error
	requests []*GenerateRequest
}

func (p *stubProvider) Name() ProviderID {
	return p.id
}

func (p *stubProvider) GenerateResponse(_ context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	p.requests = append(p.requests, req)
	if p.err != nil {
		return nil, p.err
	}
	return p.resp, nil
}
