// Package main provides the vocalsonar CLI.
//
// Usage:
//
//	vocalsonar [flags] <command> [args]
//
// Commands:
//
//	analyze    - Telemetry, diagnosis and score for one or more sessions
//	telemetry  - Telemetry only
//	diagnose   - Run the rule engine over a stored telemetry record
//	note       - Convert between note names and frequencies
//	version    - Show version information
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/RyanBlaney/sonido-vocal/cmd/vocalsonar/commands"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := commands.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
