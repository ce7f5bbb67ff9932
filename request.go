package llmprovider

import (
	"fmt"
	"strings"
)

// GenerateRequest contains the parameters for a single generation call.
// A request is never modified after it is handed to a Provider.
type GenerateRequest struct {
	// Prompt is the full user prompt text.
	Prompt string

	// Model is the model identifier (e.g., "gpt-4.1-mini").
	// Empty means the backend's default model from backends.yaml.
	Model string

	// Temperature controls randomness (0.0-1.0)
	Temperature float64
}

// Validate checks the request fields every backend relies on.
func (r *GenerateRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return &ValidationError{
			Field:  "prompt",
			Value:  r.Prompt,
			Reason: "prompt must not be empty",
			Err:    ErrInvalidRequest,
		}
	}
	return ValidateTemperature(r.Temperature)
}

// ValidateTemperature checks that t lies in [0.0, 1.0].
func ValidateTemperature(t float64) error {
	if t < 0.0 || t > 1.0 {
		return &ValidationError{
			Field:  "temperature",
			Value:  t,
			Reason: fmt.Sprintf("temperature must be between 0.0 and 1.0, got %g", t),
			Err:    ErrInvalidRequest,
		}
	}
	return nil
}

// ModelOr returns the requested model, or fallback when none was set.
func (r *GenerateRequest) ModelOr(fallback string) string {
	if m := strings.TrimSpace(r.Model); m != "" {
		return m
	}
	return fallback
}
