// Package httpclient provides the JSON-over-HTTP call shared by the REST
// backends. Every failure comes back as *llmprovider.BackendError.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	llmprovider "github.com/haowjy/meridian-playbook"
)

// DefaultTimeout bounds a single generation call at the transport level.
const DefaultTimeout = 120 * time.Second

// maxErrorBody caps how much of an error response is echoed into messages.
const maxErrorBody = 512

// Header is an extra request header.
type Header struct {
	Key   string
	Value string
}

// New returns an *http.Client with DefaultTimeout.
func New() *http.Client {
	return &http.Client{Timeout: DefaultTimeout}
}

// PostJSON marshals body, POSTs it to url and returns the raw response body.
// Non-2xx statuses are mapped to *llmprovider.BackendError carrying the status
// code and the provider's error message when one can be found.
func PostJSON(ctx context.Context, client *http.Client, provider llmprovider.ProviderID, url string, body any, headers ...Header) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, backendErr(provider, 0, "failed to marshal request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, backendErr(provider, 0, "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for _, h := range headers {
		req.Header.Set(h.Key, h.Value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, backendErr(provider, 0, "HTTP request failed", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("failed to close response body", "provider", provider, "error", closeErr)
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, backendErr(provider, resp.StatusCode, "failed to read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &llmprovider.BackendError{
			Provider:   provider.String(),
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data),
		}
	}
	return data, nil
}

// Decode unmarshals data into out, mapping failures to *llmprovider.BackendError.
func Decode(provider llmprovider.ProviderID, data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return backendErr(provider, 0, "failed to parse response", err)
	}
	return nil
}

func backendErr(provider llmprovider.ProviderID, status int, msg string, err error) error {
	return &llmprovider.BackendError{
		Provider:   provider.String(),
		StatusCode: status,
		Message:    fmt.Sprintf("%s: %v", msg, err),
		Err:        err,
	}
}

// errorMessage pulls a message out of the common error envelopes:
// {"error":{"message":...}}, {"error":"..."}, {"message":"..."}.
// Anything else is returned as truncated plain text.
func errorMessage(body []byte) string {
	var envelope struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if len(envelope.Error) > 0 {
			var nested struct {
				Message string `json:"message"`
			}
			if json.Unmarshal(envelope.Error, &nested) == nil && nested.Message != "" {
				return nested.Message
			}
			var plain string
			if json.Unmarshal(envelope.Error, &plain) == nil && plain != "" {
				return plain
			}
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}

	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody] + "..."
	}
	if text == "" {
		return "empty error response"
	}
	return text
}
