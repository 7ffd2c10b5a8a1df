package task

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(context.Context) error { return nil }

func TestRegistry_Register(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Register(&Task{Name: "clean", Description: "Remove artifacts", Run: noop}))

	got, ok := reg.Get("clean")
	require.True(t, ok)
	assert.Equal(t, "Remove artifacts", got.Description)

	_, ok = reg.Get("missing")
	assert.False(t, ok)
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	reg := NewRegistry()

	require.NoError(t, reg.Register(&Task{Name: "test", Run: noop}))
	err := reg.Register(&Task{Name: "test", Run: noop})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegistry_RegisterEmptyName(t *testing.T) {
	reg := NewRegistry()

	require.Error(t, reg.Register(&Task{}))
	require.Error(t, reg.Register(nil))
}

func TestRegistry_ListSorted(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"test", "clean", "install", "help"} {
		require.NoError(t, reg.Register(&Task{Name: name, Run: noop}))
	}

	var names []string
	for _, task := range reg.List() {
		names = append(names, task.Name)
	}
	assert.Equal(t, []string{"clean", "help", "install", "test"}, names)
	assert.Equal(t, []string{"clean", "help", "install", "test"}, reg.Names())
}
