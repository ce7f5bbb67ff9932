package llmprovider

import "strings"

// GenerateResponse contains the backend's response normalized into blocks.
type GenerateResponse struct {
	// Blocks is the list of content segments returned by the provider, in order
	Blocks []*Block

	// Model is the model that was used (may differ from request if aliased)
	Model string

	// StopReason indicates why generation stopped (e.g., "end_turn", "stop")
	StopReason string

	// Raw is a string rendering of the raw backend response.
	// It is what Text returns when no block carries text.
	Raw string
}

// Text concatenates the text-bearing blocks in order, joined by newlines.
// When no block carries text, the raw response rendering is returned instead.
func (r *GenerateResponse) Text() string {
	if r == nil {
		return ""
	}
	parts := make([]string, 0, len(r.Blocks))
	for _, block := range r.Blocks {
		if block == nil || !block.IsText() {
			continue
		}
		parts = append(parts, *block.TextContent)
	}
	if len(parts) == 0 {
		return r.Raw
	}
	return strings.Join(parts, "\n")
}
