package llmprovider

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestBind_InvokeDelegates(t *testing.T) {
	provider := &stubProvider{
		id:   ProviderDummy,
		resp: &GenerateResponse{Blocks: []*Block{NewTextBlock("a"), NewTextBlock("b")}},
	}

	inv := Bind(provider, "model-x", 0.7)
	got, err := inv.Invoke(context.Background(), "prompt text")
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if got != "a\nb" {
		t.Errorf("Invoke() = %q, want %q", got, "a\nb")
	}

	if len(provider.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(provider.requests))
	}
	req := provider.requests[0]
	if req.Prompt != "prompt text" || req.Model != "model-x" || req.Temperature != 0.7 {
		t.Errorf("unexpected request %+v", req)
	}
	if inv.Model() != "model-x" || inv.Temperature() != 0.7 || inv.Provider() != provider {
		t.Error("accessors do not reflect bound values")
	}
}

func TestBind_ErrorPropagatesUnchanged(t *testing.T) {
	backendErr := &BackendError{Provider: "openai", StatusCode: 500, Message: "boom"}
	provider := &stubProvider{id: ProviderOpenAI, err: backendErr}

	_, err := Bind(provider, "", 0.2).Invoke(context.Background(), "p")
	if err != backendErr {
		t.Fatalf("expected the provider's error value, got %v", err)
	}
}

func TestBind_LogsValidationWarnings(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	provider := &stubProvider{id: ProviderOpenAI, resp: &GenerateResponse{}}
	Bind(provider, "gpt-2", 0.2, WithLogger(logger))

	if !strings.Contains(buf.String(), string(WarningCodeModelUnknown)) {
		t.Errorf("expected %s warning in log, got %q", WarningCodeModelUnknown, buf.String())
	}
}

func TestBind_LogsPromptCharacters(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	provider := &stubProvider{id: ProviderDummy, resp: &GenerateResponse{Blocks: []*Block{NewTextBlock("ok")}}}
	if _, err := Bind(provider, "", 0.2, WithLogger(logger)).Invoke(context.Background(), "héllo wörld"); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), "prompt_chars=11") {
		t.Errorf("expected prompt_chars=11 in log, got %q", buf.String())
	}
}

func TestInvokerFunc(t *testing.T) {
	var inv Invoker = InvokerFunc(func(_ context.Context, prompt string) (string, error) {
		if prompt == "" {
			return "", errors.New("empty")
		}
		return strings.ToUpper(prompt), nil
	})

	got, err := inv.Invoke(context.Background(), "abc")
	if err != nil || got != "ABC" {
		t.Errorf("Invoke() = %q, %v", got, err)
	}
}
