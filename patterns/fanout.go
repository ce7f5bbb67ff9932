package patterns

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	llmprovider "github.com/haowjy/meridian-playbook"
)

// VoteSeparator joins vote candidates in VoteResult.Joined.
const VoteSeparator = "\n---\n"

// VoteResult holds the candidates of a self-consistency vote, in vote order.
type VoteResult struct {
	Candidates []string
}

// Joined returns the candidates separated by VoteSeparator.
func (r *VoteResult) Joined() string {
	return strings.Join(r.Candidates, VoteSeparator)
}

// Vote issues the same prompt n times. No aggregation is performed; the
// candidates are returned for the caller to present or judge.
func Vote(ctx context.Context, inv llmprovider.Invoker, prompt string, n int, opts ...Option) (*VoteResult, error) {
	if n < 1 {
		return nil, ErrInvalidFanout
	}
	candidates, err := fanout(ctx, inv, n, func(int) string { return prompt }, buildOptions(opts))
	if err != nil {
		return nil, err
	}
	return &VoteResult{Candidates: candidates}, nil
}

// Fanout issues one call per label and returns the outputs in label order.
func Fanout(ctx context.Context, inv llmprovider.Invoker, labels []string, prompt func(label string) string, opts ...Option) ([]string, error) {
	if len(labels) == 0 {
		return nil, ErrInvalidFanout
	}
	return fanout(ctx, inv, len(labels), func(i int) string { return prompt(labels[i]) }, buildOptions(opts))
}

// BranchResult holds a branch-and-judge run.
type BranchResult struct {
	Labels      []string
	Branches    []string // Branch outputs, index-aligned with Labels
	JudgePrompt string
	Verdict     string
}

// BranchAndJudge explores one branch per label, then asks a judge call to
// evaluate every branch output. The judge runs only after all branches have
// finished and sees the outputs in label order.
func BranchAndJudge(
	ctx context.Context,
	inv llmprovider.Invoker,
	labels []string,
	branchPrompt func(label string) string,
	judgePrompt func(outputs []string) string,
	opts ...Option,
) (*BranchResult, error) {
	branches, err := Fanout(ctx, inv, labels, branchPrompt, opts...)
	if err != nil {
		return nil, err
	}

	res := &BranchResult{
		Labels:      append([]string(nil), labels...),
		Branches:    branches,
		JudgePrompt: judgePrompt(branches),
	}
	verdict, err := inv.Invoke(ctx, res.JudgePrompt)
	if err != nil {
		return nil, err
	}
	res.Verdict = verdict
	return res, nil
}

// fanout runs n calls with at most o.maxConcurrency in flight. Each result is
// stored at its own index so the order never depends on completion order.
// Once a call fails, calls that have not started yet are skipped.
func fanout(ctx context.Context, inv llmprovider.Invoker, n int, prompt func(i int) string, o options) ([]string, error) {
	out := make([]string, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.maxConcurrency)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			text, err := inv.Invoke(gctx, prompt(i))
			if err != nil {
				return err
			}
			out[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
