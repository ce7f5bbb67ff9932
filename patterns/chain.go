package patterns

import (
	"context"

	llmprovider "github.com/haowjy/meridian-playbook"
)

// ChainResult holds both stages of a two-stage chain.
type ChainResult struct {
	FirstPrompt  string
	First        string
	SecondPrompt string
	Second       string
}

// Chain runs first, then builds the second prompt from its output with next.
// The second call is never issued if the first fails.
func Chain(ctx context.Context, inv llmprovider.Invoker, first string, next func(prev string) string) (*ChainResult, error) {
	res := &ChainResult{FirstPrompt: first}

	out, err := inv.Invoke(ctx, first)
	if err != nil {
		return nil, err
	}
	res.First = out

	res.SecondPrompt = next(out)
	out, err = inv.Invoke(ctx, res.SecondPrompt)
	if err != nil {
		return nil, err
	}
	res.Second = out
	return res, nil
}
