package patterns

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/google/uuid"

	llmprovider "github.com/haowjy/meridian-playbook"
)

// Conversation is a multi-turn session over a single Invoker. Its history is
// append-only and lives only as long as the Conversation value.
type Conversation struct {
	id      uuid.UUID
	inv     llmprovider.Invoker
	logger  *slog.Logger
	mu      sync.Mutex
	history []llmprovider.Message
}

// ConversationOption configures a Conversation
type ConversationOption func(*Conversation)

// WithConversationLogger sets the logger used for per-turn debug records.
func WithConversationLogger(logger *slog.Logger) ConversationOption {
	return func(c *Conversation) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewConversation starts an empty session.
func NewConversation(inv llmprovider.Invoker, opts ...ConversationOption) *Conversation {
	c := &Conversation{
		id:     uuid.New(),
		inv:    inv,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the session identifier.
func (c *Conversation) ID() string {
	return c.id.String()
}

// Send appends the user message, sends the whole history as a transcript and
// appends the reply. When the call fails the user message stays recorded and
// the error is returned.
func (c *Conversation) Send(ctx context.Context, user string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.history = append(c.history, llmprovider.Message{Role: llmprovider.RoleUser, Content: user})
	prompt, err := renderTranscript(c.history)
	if err != nil {
		return "", err
	}

	reply, err := c.inv.Invoke(ctx, prompt)
	if err != nil {
		return "", err
	}
	c.history = append(c.history, llmprovider.Message{Role: llmprovider.RoleAssistant, Content: reply})

	c.logger.Debug("conversation turn",
		"conversation_id", c.id.String(),
		"turns", len(c.history)/2,
		"prompt_chars", utf8.RuneCountInString(prompt))
	return reply, nil
}

// History returns a copy of the messages so far.
func (c *Conversation) History() []llmprovider.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]llmprovider.Message, len(c.history))
	copy(out, c.history)
	return out
}

// renderTranscript lays out the history as a JSON array with ", " and ": "
// separators and every non-ASCII character written as a \u escape.
func renderTranscript(history []llmprovider.Message) (string, error) {
	var b strings.Builder
	b.WriteString("Conversation:\n[")
	for i, m := range history {
		if i > 0 {
			b.WriteString(", ")
		}
		role, err := quoteASCII(m.Role)
		if err != nil {
			return "", err
		}
		content, err := quoteASCII(m.Content)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, `{"role": %s, "content": %s}`, role, content)
	}
	b.WriteString("]\nAssistant:")
	return b.String(), nil
}

// quoteASCII returns s as a JSON string literal containing only printable
// ASCII. Characters outside the BMP become surrogate pairs.
func quoteASCII(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", fmt.Errorf("failed to render conversation: %w", err)
	}

	var b strings.Builder
	for _, r := range strings.TrimSuffix(buf.String(), "\n") {
		switch {
		case r < 0x7f:
			b.WriteRune(r)
		case r > 0xFFFF:
			r1, r2 := utf16.EncodeRune(r)
			fmt.Fprintf(&b, `\u%04x\u%04x`, r1, r2)
		default:
			fmt.Fprintf(&b, `\u%04x`, r)
		}
	}
	return b.String(), nil
}
