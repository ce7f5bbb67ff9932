// Package patterns composes generation calls into multi-call recipes.
//
// Every pattern programs against llmprovider.Invoker only, so it never learns
// which backend answers. Patterns do not retry and do not swallow errors: the
// first failing call ends the pattern and its error is returned unchanged.
package patterns

import (
	"context"
	"errors"

	llmprovider "github.com/haowjy/meridian-playbook"
)

// ErrInvalidFanout is returned when a fan-out pattern is asked for fewer than
// one call.
var ErrInvalidFanout = errors.New("patterns: fan-out needs at least one call")

// Kind names the orchestration shape a recipe uses.
type Kind int

const (
	KindDirect Kind = iota
	KindChain
	KindVote
	KindBranchJudge
	KindToolLoop
	KindMultiTurn
	KindStatic
)

// String returns a human-readable name for the kind
func (k Kind) String() string {
	switch k {
	case KindDirect:
		return "direct"
	case KindChain:
		return "chain"
	case KindVote:
		return "vote"
	case KindBranchJudge:
		return "branch-judge"
	case KindToolLoop:
		return "tool-loop"
	case KindMultiTurn:
		return "multi-turn"
	case KindStatic:
		return "static"
	default:
		return "unknown"
	}
}

// Option configures fan-out patterns.
type Option func(*options)

type options struct {
	maxConcurrency int
}

// WithMaxConcurrency bounds how many calls of one fan-out run at once.
// The default, and any n <= 0, is 1: calls run sequentially.
func WithMaxConcurrency(n int) Option {
	return func(o *options) {
		o.maxConcurrency = n
	}
}

func buildOptions(opts []Option) options {
	o := options{maxConcurrency: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxConcurrency <= 0 {
		o.maxConcurrency = 1
	}
	return o
}

// Direct is the degenerate pattern: a single call.
func Direct(ctx context.Context, inv llmprovider.Invoker, prompt string) (string, error) {
	return inv.Invoke(ctx, prompt)
}
