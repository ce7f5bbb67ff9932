package llmprovider

import (
	"errors"
	"testing"
)

func TestGenerateRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     GenerateRequest
		wantErr bool
	}{
		{"valid", GenerateRequest{Prompt: "hi", Temperature: 0.2}, false},
		{"zero temperature", GenerateRequest{Prompt: "hi", Temperature: 0}, false},
		{"max temperature", GenerateRequest{Prompt: "hi", Temperature: 1}, false},
		{"negative temperature", GenerateRequest{Prompt: "hi", Temperature: -0.1}, true},
		{"temperature above one", GenerateRequest{Prompt: "hi", Temperature: 1.01}, true},
		{"blank prompt", GenerateRequest{Prompt: "  ", Temperature: 0.2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
}

func TestGenerateRequest_ModelOr(t *testing.T) {
	req := &GenerateRequest{}
	if got := req.ModelOr("fallback"); got != "fallback" {
		t.Errorf("ModelOr() = %q, want fallback", got)
	}
	req.Model = "explicit"
	if got := req.ModelOr("fallback"); got != "explicit" {
		t.Errorf("ModelOr() = %q, want explicit", got)
	}
}
