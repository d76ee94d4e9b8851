package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/thinkfix/cli/cmd/thinkfix/cli"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	rootCmd := cli.NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)

	if err != nil {
		// A repaired transcript blocks the prompt: Claude Code shows stderr
		// to the user when a hook exits with the blocking code.
		var restart *cli.RestartRequiredError
		if errors.As(err, &restart) {
			fmt.Fprint(os.Stderr, restart.UserMessage())
			cancel()
			os.Exit(cli.BlockingExitCode)
		}

		// Don't print if the command already handled its own error output
		var silent *cli.SilentError
		if !errors.As(err, &silent) {
			fmt.Fprintln(os.Stderr, err)
		}
		cancel()
		os.Exit(1)
	}
	cancel() // Cleanup on successful exit
}
