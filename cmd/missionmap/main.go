package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/missionmap/internal/cmd"
	"github.com/felixgeelhaar/missionmap/internal/exitcode"
)

func main() {
	exitcode.Exit(run())
}

// run executes the command tree under a signal-aware context and maps
// the outcome to a process exit code.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitcode.Success
	}

	if stderrors.Is(ctx.Err(), context.Canceled) {
		fmt.Fprintln(os.Stderr, "\nOperation cancelled by user")
		return exitcode.Interrupted
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return exitcode.DetermineExitCode(err)
}
