package llmprovider

// Block type constants
const (
	BlockTypeText     = "text"
	BlockTypeThinking = "thinking" // Claude extended thinking
	BlockTypeToolUse  = "tool_use"
	BlockTypeOther    = "other" // anything a backend returns that we do not model
)

// Block represents one content segment of a backend response.
// Only text blocks contribute to GenerateResponse.Text.
type Block struct {
	// BlockType indicates the type of block
	// Values: "text", "thinking", "tool_use", "other"
	BlockType string `json:"block_type"`

	// TextContent contains the text for text/thinking blocks
	TextContent *string `json:"text_content,omitempty"`
}

// NewTextBlock returns a text block holding s.
func NewTextBlock(s string) *Block {
	return &Block{BlockType: BlockTypeText, TextContent: &s}
}

// IsText returns true if this block is text-bearing.
func (b *Block) IsText() bool {
	return b.BlockType == BlockTypeText && b.TextContent != nil
}

// Conversation roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of a multi-turn conversation history.
type Message struct {
	// Role is either "user" or "assistant"
	Role string `json:"role"`

	// Content is the plain message text
	Content string `json:"content"`
}
