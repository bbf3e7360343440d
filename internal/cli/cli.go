// Package cli provides the command-line interface for PowerupGo
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Run starts the CLI application. Ctrl-C cancels in-flight node requests.
func Run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
