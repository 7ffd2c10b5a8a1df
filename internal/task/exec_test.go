package task

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunShell_Success(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell test assumes sh")
	}

	var out, errOut bytes.Buffer
	err := RunShell(context.Background(), t.TempDir(), "echo hello", &out, &errOut)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out.String())
}

func TestRunShell_ExitCodePropagates(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell test assumes sh")
	}

	var out, errOut bytes.Buffer
	err := RunShell(context.Background(), t.TempDir(), "exit 3", &out, &errOut)
	require.Error(t, err)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.Code)
	assert.Contains(t, exitErr.Error(), "exit 3")
}

func TestRunShell_RunsInDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell test assumes sh")
	}

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marker.txt"), []byte("x"), 0o644))

	var out, errOut bytes.Buffer
	err := RunShell(context.Background(), dir, "ls", &out, &errOut)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "marker.txt")
}
