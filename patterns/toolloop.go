package patterns

import (
	"context"

	llmprovider "github.com/haowjy/meridian-playbook"
)

// ToolLoopResult holds one plan / act / answer round.
type ToolLoopResult struct {
	Plan        string
	ToolOutput  string
	FinalPrompt string
	Final       string
}

// ToolLoop asks for a plan, runs tool locally on input, then asks for the
// final answer with finalPrompt built from the tool output. The plan text is
// recorded but not parsed; the tool input is fixed by the caller.
func ToolLoop(
	ctx context.Context,
	inv llmprovider.Invoker,
	planPrompt string,
	tool llmprovider.ToolDefinition,
	input string,
	finalPrompt func(toolOutput string) string,
) (*ToolLoopResult, error) {
	plan, err := inv.Invoke(ctx, planPrompt)
	if err != nil {
		return nil, err
	}

	toolOutput, err := tool.Run(ctx, input)
	if err != nil {
		return nil, err
	}

	res := &ToolLoopResult{
		Plan:        plan,
		ToolOutput:  toolOutput,
		FinalPrompt: finalPrompt(toolOutput),
	}
	res.Final, err = inv.Invoke(ctx, res.FinalPrompt)
	if err != nil {
		return nil, err
	}
	return res, nil
}
