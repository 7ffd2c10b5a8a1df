// Package commands_test provides tests for CLI command creation.
package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRangeCommand(t *testing.T) {
	cmd := NewRangeCommand()

	assert.Equal(t, "range <range>...", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	for _, flag := range []string{"file", "numbers"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewReplCommand(t *testing.T) {
	cmd := NewReplCommand()

	assert.Equal(t, "repl [file]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}

func TestNewTaskCommand(t *testing.T) {
	cmd := NewTaskCommand()

	assert.Equal(t, "task [target]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	for _, flag := range []string{"dry-run", "watch", "makefile", "history"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
	assert.Equal(t, "10", cmd.Flags().Lookup("history").NoOptDefVal)
}

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3")
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)

	assert.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "edtext v1.2.3")
}
