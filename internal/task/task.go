// Package task implements the edtext development targets: a registry of
// named build actions (clean, install, test plus configured extras), a
// parser for annotated Makefile targets, and the supporting pieces for
// running, cleaning and watching.
package task

import (
	"context"
	"fmt"
	"sort"
)

// Task is a named, invocable build action.
type Task struct {
	Name        string
	Description string
	Run         func(ctx context.Context) error
}

// Registry holds the known tasks by name.
type Registry struct {
	tasks map[string]*Task
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tasks: make(map[string]*Task)}
}

// Register adds a task. Empty names and duplicates are errors.
func (r *Registry) Register(t *Task) error {
	if t == nil || t.Name == "" {
		return fmt.Errorf("task must have a name")
	}
	if _, exists := r.tasks[t.Name]; exists {
		return fmt.Errorf("task %q already registered", t.Name)
	}
	r.tasks[t.Name] = t
	return nil
}

// Get looks up a task by name.
func (r *Registry) Get(name string) (*Task, bool) {
	t, ok := r.tasks[name]
	return t, ok
}

// List returns all tasks sorted alphabetically by name.
func (r *Registry) List() []*Task {
	tasks := make([]*Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Name < tasks[j].Name })
	return tasks
}

// Names returns the registered task names sorted alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tasks))
	for name := range r.tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
