package llmprovider

import (
	"context"
)

// Built-in tool names
const (
	ToolSearchDB = "search_db"
)

// ToolFunc is a deterministic local computation a tool-augmented pattern runs
// between generation calls. It has no access to an Invoker and must not
// perform generation itself.
type ToolFunc func(ctx context.Context, input string) (string, error)

// ToolDefinition describes a local tool
type ToolDefinition struct {
	Name        string   // Unique tool name
	Description string   // Human-readable description, embedded in planning prompts
	Func        ToolFunc // The computation
}

// Run executes the tool.
func (d ToolDefinition) Run(ctx context.Context, input string) (string, error) {
	return d.Func(ctx, input)
}

// SearchDB simulates an external database lookup. It returns the same record
// for every query.
func SearchDB(_ context.Context, _ string) (string, error) {
	return "DB_RESULT: Latest EPS $1.22, YoY +8%.", nil
}
