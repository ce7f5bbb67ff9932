// Command playbook runs prompting-technique recipes against a chosen backend.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/fatih/color"

	llmprovider "github.com/haowjy/meridian-playbook"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode returns 2 for usage errors and 1 for everything else.
func exitCode(err error) int {
	if llmprovider.IsUsageError(err) {
		return 2
	}
	return 1
}
