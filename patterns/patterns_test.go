package patterns

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	llmprovider "github.com/haowjy/meridian-playbook"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindDirect, "direct"},
		{KindChain, "chain"},
		{KindVote, "vote"},
		{KindBranchJudge, "branch-judge"},
		{KindToolLoop, "tool-loop"},
		{KindMultiTurn, "multi-turn"},
		{KindStatic, "static"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestDirect(t *testing.T) {
	rec := &recorder{}
	got, err := Direct(context.Background(), rec, "hello")
	if err != nil {
		t.Fatalf("Direct() error = %v", err)
	}
	if got != "R1" || len(rec.calls()) != 1 {
		t.Errorf("got %q after %d calls", got, len(rec.calls()))
	}
}

func TestChain(t *testing.T) {
	rec := &recorder{}
	res, err := Chain(context.Background(), rec, "stage one", func(prev string) string {
		return "Using this background:\n" + prev + "\nNow answer."
	})
	if err != nil {
		t.Fatalf("Chain() error = %v", err)
	}

	if res.First != "R1" || res.Second != "R2" {
		t.Errorf("results = %q, %q", res.First, res.Second)
	}
	if !strings.Contains(res.SecondPrompt, res.First) {
		t.Errorf("second prompt %q does not contain first result %q", res.SecondPrompt, res.First)
	}
	if calls := rec.calls(); calls[1] != res.SecondPrompt {
		t.Errorf("second call sent %q", calls[1])
	}
}

func TestChain_FirstFailureStops(t *testing.T) {
	rec := &recorder{failOn: "stage one"}
	_, err := Chain(context.Background(), rec, "stage one", func(prev string) string { return prev })
	if err == nil {
		t.Fatal("expected error")
	}
	if n := len(rec.calls()); n != 1 {
		t.Errorf("made %d calls, want 1", n)
	}
}

func TestVote(t *testing.T) {
	for _, concurrency := range []int{0, 1, 3} {
		t.Run(fmt.Sprintf("concurrency=%d", concurrency), func(t *testing.T) {
			rec := &recorder{}
			res, err := Vote(context.Background(), rec, "same prompt", 3, WithMaxConcurrency(concurrency))
			if err != nil {
				t.Fatalf("Vote() error = %v", err)
			}

			segments := strings.Split(res.Joined(), VoteSeparator)
			if len(segments) != 3 {
				t.Fatalf("got %d segments: %q", len(segments), res.Joined())
			}
			for _, s := range segments {
				if !strings.HasPrefix(s, "R") {
					t.Errorf("segment %q is not a full result", s)
				}
			}
			for _, p := range rec.calls() {
				if p != "same prompt" {
					t.Errorf("vote sent %q", p)
				}
			}
		})
	}
}

func TestVote_InvalidN(t *testing.T) {
	rec := &recorder{}
	for _, n := range []int{0, -1} {
		if _, err := Vote(context.Background(), rec, "p", n); !errors.Is(err, ErrInvalidFanout) {
			t.Errorf("Vote(n=%d) error = %v, want ErrInvalidFanout", n, err)
		}
	}
	if len(rec.calls()) != 0 {
		t.Error("invalid vote must not call the invoker")
	}
}

// slowEcho answers with the prompt after a delay that is longest for the
// first labels, so completion order is the reverse of label order.
func slowEcho(inFlight, peak *int32) llmprovider.InvokerFunc {
	return func(ctx context.Context, prompt string) (string, error) {
		n := atomic.AddInt32(inFlight, 1)
		for {
			p := atomic.LoadInt32(peak)
			if n <= p || atomic.CompareAndSwapInt32(peak, p, n) {
				break
			}
		}
		defer atomic.AddInt32(inFlight, -1)

		delay := map[string]time.Duration{"A": 30, "B": 20, "C": 10}[prompt] * time.Millisecond
		select {
		case <-time.After(delay):
			return "out-" + prompt, nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

func TestFanout_OrderPreserved(t *testing.T) {
	var inFlight, peak int32
	inv := slowEcho(&inFlight, &peak)

	got, err := Fanout(context.Background(), inv, []string{"A", "B", "C"}, func(l string) string { return l }, WithMaxConcurrency(3))
	if err != nil {
		t.Fatalf("Fanout() error = %v", err)
	}
	want := []string{"out-A", "out-B", "out-C"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Fanout() = %v, want %v", got, want)
	}
	if peak < 2 {
		t.Errorf("peak concurrency = %d, expected parallel calls", peak)
	}
}

func TestFanout_SequentialByDefault(t *testing.T) {
	var inFlight, peak int32
	inv := slowEcho(&inFlight, &peak)

	if _, err := Fanout(context.Background(), inv, []string{"A", "B", "C"}, func(l string) string { return l }); err != nil {
		t.Fatalf("Fanout() error = %v", err)
	}
	if peak != 1 {
		t.Errorf("peak concurrency = %d, want 1", peak)
	}
}

func TestFanout_Error(t *testing.T) {
	rec := &recorder{failOn: "B"}
	_, err := Fanout(context.Background(), rec, []string{"A", "B", "C"}, func(l string) string { return "Option " + l })
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("error = %v", err)
	}

	if _, err := Fanout(context.Background(), rec, nil, func(l string) string { return l }); !errors.Is(err, ErrInvalidFanout) {
		t.Errorf("empty labels error = %v", err)
	}
}

func TestVote_StopsAfterFirstFailure(t *testing.T) {
	rec := &recorder{failOn: "same"}
	_, err := Vote(context.Background(), rec, "same prompt", 3)
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("error = %v", err)
	}
	if got := len(rec.calls()); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestBranchAndJudge_StopsAfterFailedBranch(t *testing.T) {
	rec := &recorder{failOn: "Option A"}
	_, err := BranchAndJudge(context.Background(), rec, []string{"A", "B", "C"},
		func(l string) string { return "Option " + l },
		func(outputs []string) string { return "Evaluate" },
	)
	if err == nil {
		t.Fatal("expected error")
	}
	if calls := rec.calls(); len(calls) != 1 || calls[0] != "Option A" {
		t.Errorf("calls = %q, want only the failed branch", calls)
	}
}

func TestBranchAndJudge(t *testing.T) {
	rec := &recorder{}
	res, err := BranchAndJudge(context.Background(), rec, []string{"A", "B", "C"},
		func(l string) string { return "Option " + l },
		func(outputs []string) string { return "Evaluate:\n" + strings.Join(outputs, "\n\n") },
	)
	if err != nil {
		t.Fatalf("BranchAndJudge() error = %v", err)
	}

	if len(res.Branches) != 3 {
		t.Fatalf("got %d branches", len(res.Branches))
	}
	for _, b := range res.Branches {
		if !strings.Contains(res.JudgePrompt, b) {
			t.Errorf("judge prompt misses branch output %q", b)
		}
	}
	calls := rec.calls()
	if len(calls) != 4 || calls[3] != res.JudgePrompt {
		t.Errorf("judge must be the last of 4 calls, got %q", calls)
	}
	if res.Verdict != "R4" {
		t.Errorf("Verdict = %q", res.Verdict)
	}
}

func TestBranchAndJudge_BranchFailureSkipsJudge(t *testing.T) {
	rec := &recorder{failOn: "Option B"}
	judged := false
	_, err := BranchAndJudge(context.Background(), rec, []string{"A", "B", "C"},
		func(l string) string { return "Option " + l },
		func([]string) string { judged = true; return "judge" },
	)
	if err == nil {
		t.Fatal("expected error")
	}
	if judged {
		t.Error("judge prompt built after a branch failed")
	}
}

func TestToolLoop(t *testing.T) {
	rec := &recorder{}
	var toolCalls int
	tool := llmprovider.ToolDefinition{
		Name: "search_db",
		Func: func(_ context.Context, input string) (string, error) {
			toolCalls++
			return "DB_RESULT for " + input, nil
		},
	}

	res, err := ToolLoop(context.Background(), rec, "plan please", tool, "EPS trend", func(out string) string {
		return "Context from tool: " + out + "\nAnswer."
	})
	if err != nil {
		t.Fatalf("ToolLoop() error = %v", err)
	}

	if toolCalls != 1 {
		t.Errorf("tool ran %d times", toolCalls)
	}
	if res.ToolOutput != "DB_RESULT for EPS trend" {
		t.Errorf("ToolOutput = %q", res.ToolOutput)
	}
	if !strings.Contains(res.FinalPrompt, res.ToolOutput) {
		t.Errorf("final prompt %q misses tool output", res.FinalPrompt)
	}
	if res.Plan != "R1" || res.Final != "R2" || len(rec.calls()) != 2 {
		t.Errorf("plan %q final %q calls %d", res.Plan, res.Final, len(rec.calls()))
	}
}

func TestToolLoop_ToolError(t *testing.T) {
	rec := &recorder{}
	tool := llmprovider.ToolDefinition{
		Name: "broken",
		Func: func(context.Context, string) (string, error) { return "", errors.New("db down") },
	}
	_, err := ToolLoop(context.Background(), rec, "plan", tool, "q", func(s string) string { return s })
	if err == nil || err.Error() != "db down" {
		t.Errorf("error = %v", err)
	}
	if len(rec.calls()) != 1 {
		t.Errorf("final call must be skipped, got %d calls", len(rec.calls()))
	}
}
