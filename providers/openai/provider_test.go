package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	llmprovider "github.com/haowjy/meridian-playbook"
)

func TestConvertContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{name: "string", content: `"hello"`, want: []string{"hello"}},
		{name: "parts", content: `[{"type":"text","text":"a"},{"type":"image_url"},{"type":"text","text":"b"}]`, want: []string{"a", "", "b"}},
		{name: "null", content: `null`, want: nil},
		{name: "empty", content: ``, want: nil},
		{name: "number", content: `42`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := convertContent(json.RawMessage(tt.content))
			if len(blocks) != len(tt.want) {
				t.Fatalf("got %d blocks, want %d", len(blocks), len(tt.want))
			}
			for i, b := range blocks {
				if tt.want[i] == "" {
					if b.IsText() {
						t.Errorf("block %d should not be text", i)
					}
					continue
				}
				if !b.IsText() || *b.TextContent != tt.want[i] {
					t.Errorf("block %d = %+v, want text %q", i, b, tt.want[i])
				}
			}
		})
	}
}

func TestConvertFromChatCompletionResponse_Text(t *testing.T) {
	raw := []byte(`{"id":"c1","model":"gpt-4.1-mini","choices":[{"index":0,"message":{"role":"assistant","content":[{"type":"text","text":"one"},{"type":"text","text":"two"}]},"finish_reason":"stop"}]}`)
	var resp ChatCompletionResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := convertFromChatCompletionResponse(&resp, raw)
	if got.Text() != "one\ntwo" {
		t.Errorf("Text() = %q, want %q", got.Text(), "one\ntwo")
	}
	if got.StopReason != "stop" {
		t.Errorf("StopReason = %q", got.StopReason)
	}
}

func TestConvertFromChatCompletionResponse_RawFallback(t *testing.T) {
	raw := []byte(`{"id":"c2","model":"m","choices":[]}`)
	var resp ChatCompletionResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := convertFromChatCompletionResponse(&resp, raw)
	if got.Text() != string(raw) {
		t.Errorf("Text() = %q, want raw body", got.Text())
	}
}

func TestGenerateResponse_Server(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	var gotReq ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("X-Title"); got != "playbook" {
			t.Errorf("X-Title = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c3","model":"gpt-4.1-mini","choices":[{"message":{"role":"assistant","content":"hi there"},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	p := NewProvider(WithBaseURL(server.URL+"/"), WithHeader("X-Title", "playbook"))
	resp, err := p.GenerateResponse(context.Background(), &llmprovider.GenerateRequest{Prompt: "hello", Temperature: 0.3})
	if err != nil {
		t.Fatalf("GenerateResponse() error = %v", err)
	}
	if resp.Text() != "hi there" {
		t.Errorf("Text() = %q", resp.Text())
	}

	if gotReq.Model != "gpt-4.1-mini" {
		t.Errorf("model = %q, want backend default", gotReq.Model)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != "user" || gotReq.Messages[0].Content != "hello" {
		t.Errorf("messages = %+v", gotReq.Messages)
	}
	if gotReq.Temperature == nil || *gotReq.Temperature != 0.3 {
		t.Errorf("temperature = %v", gotReq.Temperature)
	}
}

func TestGenerateResponse_ErrorStatus(t *testing.T) {
	t.Setenv("MISTRAL_API_KEY", "k")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key"}}`))
	}))
	defer server.Close()

	p := NewCompatible(llmprovider.ProviderMistral, WithBaseURL(server.URL))
	_, err := p.GenerateResponse(context.Background(), &llmprovider.GenerateRequest{Prompt: "x"})

	var backendErr *llmprovider.BackendError
	if !errors.As(err, &backendErr) {
		t.Fatalf("error = %v, want *BackendError", err)
	}
	if backendErr.StatusCode != http.StatusUnauthorized || backendErr.Message != "bad key" {
		t.Errorf("got %+v", backendErr)
	}
	if backendErr.Provider != "mistral" {
		t.Errorf("Provider = %q", backendErr.Provider)
	}
	if !llmprovider.IsAuthError(err) {
		t.Error("401 should be an auth error")
	}
}

func TestGenerateResponse_MissingCredential(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")

	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	p := NewCompatible(llmprovider.ProviderOpenRouter, WithBaseURL(server.URL))
	_, err := p.GenerateResponse(context.Background(), &llmprovider.GenerateRequest{Prompt: "x"})
	if !errors.Is(err, llmprovider.ErrMissingCredential) {
		t.Fatalf("error = %v, want ErrMissingCredential", err)
	}
	if called {
		t.Error("no request should be sent without a credential")
	}
}
