package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	// Top-level context for the application; run derives a signal-aware child from it.
	ctx := context.Background()

	// The command line, environment and output streams are passed in so run can be
	// tested in isolation.
	if err := run(ctx, os.Args, os.Getenv, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
