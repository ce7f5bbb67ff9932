package patterns

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// recorder answers every prompt with "R<n>" (n counts calls from 1) and
// records the prompts it saw. failOn makes prompts containing that text fail.
type recorder struct {
	mu      sync.Mutex
	prompts []string
	failOn  string
}

func (r *recorder) Invoke(_ context.Context, prompt string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prompts = append(r.prompts, prompt)
	if r.failOn != "" && strings.Contains(prompt, r.failOn) {
		return "", fmt.Errorf("boom on %q", r.failOn)
	}
	return fmt.Sprintf("R%d", len(r.prompts)), nil
}

func (r *recorder) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.prompts...)
}
