package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"whisperlite/internal/services"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, renderError(err))
		}
		os.Exit(1)
	}
}

// renderError distinguishes configuration mistakes, which the user can
// fix, from runtime failures.
func renderError(err error) string {
	msg := err.Error()
	if services.IsConfiguration(err) {
		msg += "\nRun 'whisperlite config show' to inspect the effective settings."
	}
	return msg
}
