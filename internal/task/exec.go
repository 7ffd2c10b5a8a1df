package task

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"
)

// ExitError reports a delegated command that exited non-zero. The exit code
// is propagated untouched to the edtext process exit status.
type ExitError struct {
	Command string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command %q exited with code %d", e.Command, e.Code)
}

// RunShell runs command through the platform shell in dir, streaming output
// to the given writers. A non-zero child exit becomes an *ExitError; other
// failures (shell missing, context canceled) are returned as-is.
func RunShell(ctx context.Context, dir, command string, stdout, stderr io.Writer) error {
	shell, flag := platformShell()

	cmd := exec.CommandContext(ctx, shell, flag, command)
	cmd.Dir = dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Command: command, Code: exitErr.ExitCode()}
	}
	if err != nil {
		return fmt.Errorf("failed to run %q: %w", command, err)
	}
	return nil
}

func platformShell() (shell, flag string) {
	if runtime.GOOS == "windows" {
		return "cmd", "/C"
	}
	return "sh", "-c"
}
