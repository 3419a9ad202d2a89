package main

import (
	"errors"
	"fmt"
	"os"

	"metawipe/internal/runner"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		switch {
		case errors.Is(err, runner.ErrInterrupted):
			fmt.Fprintln(os.Stderr, "Interrupted.")
			os.Exit(130)
		case errors.Is(err, runner.ErrFilesFailed):
			// The summary already showed the failures.
			os.Exit(1)
		default:
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
