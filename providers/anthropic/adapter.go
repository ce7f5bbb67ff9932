package anthropic

import (
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	llmprovider "github.com/haowjy/meridian-playbook"
)

// buildMessageParams constructs Anthropic API parameters for a single-turn prompt.
func buildMessageParams(req *llmprovider.GenerateRequest, model string, maxTokens int) anthropic.MessageNewParams {
	return anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
		Temperature: anthropic.Float(req.Temperature),
	}
}

// convertFromAnthropicResponse normalizes an Anthropic message into blocks.
// Only "text" content blocks are marked text-bearing; the raw JSON is kept
// for the fallback rendering.
func convertFromAnthropicResponse(msg *anthropic.Message) *llmprovider.GenerateResponse {
	blocks := make([]*llmprovider.Block, 0, len(msg.Content))
	for _, content := range msg.Content {
		blocks = append(blocks, convertAnthropicBlock(content))
	}

	raw := msg.RawJSON()
	if raw == "" {
		raw = fmt.Sprintf("%+v", *msg)
	}

	return &llmprovider.GenerateResponse{
		Blocks:     blocks,
		Model:      string(msg.Model),
		StopReason: string(msg.StopReason),
		Raw:        raw,
	}
}

func convertAnthropicBlock(content anthropic.ContentBlockUnion) *llmprovider.Block {
	switch content.Type {
	case "text":
		return llmprovider.NewTextBlock(content.Text)
	case "thinking":
		text := content.Thinking
		return &llmprovider.Block{BlockType: llmprovider.BlockTypeThinking, TextContent: &text}
	case "tool_use", "server_tool_use":
		return &llmprovider.Block{BlockType: llmprovider.BlockTypeToolUse}
	default:
		return &llmprovider.Block{BlockType: llmprovider.BlockTypeOther}
	}
}
