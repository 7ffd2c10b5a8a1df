// Package main provides the edtext command-line tool.
package main

import (
	"errors"
	"os"

	"github.com/edtext-labs/edtext/internal/cli"
	"github.com/edtext-labs/edtext/internal/task"
)

func main() {
	if err := cli.Execute(); err != nil {
		// Delegated commands keep their exit code.
		var exitErr *task.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
