package task

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// Watcher re-runs a callback when files under a project root change. Events
// are debounced so a burst of writes (editor save, branch switch) triggers a
// single callback with the batch of changed paths.
type Watcher struct {
	root     string
	ignore   []string
	debounce time.Duration
	onChange func(paths []string)
	fw       *fsnotify.Watcher
}

// NewWatcher creates a watcher rooted at root. Ignore patterns are
// doublestar globs matched against root-relative paths; hidden directories
// are always skipped.
func NewWatcher(root string, ignore []string, debounce time.Duration, onChange func(paths []string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		root:     root,
		ignore:   ignore,
		debounce: debounce,
		onChange: onChange,
		fw:       fw,
	}, nil
}

// Run watches until ctx is done. It blocks.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.addRecursive(w.root); err != nil {
		return err
	}

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	var pending []string
	seen := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if w.shouldIgnore(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.addRecursive(event.Name)
				}
			}
			if !seen[event.Name] {
				seen[event.Name] = true
				pending = append(pending, event.Name)
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			if len(pending) > 0 {
				batch := pending
				pending = nil
				seen = make(map[string]bool)
				w.onChange(batch)
			}

		case _, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
		}
	}
}

// Close releases the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fw.Close()
}

func (w *Watcher) addRecursive(dir string) error {
	if err := w.fw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		full := filepath.Join(dir, entry.Name())
		if w.shouldIgnore(full) {
			continue
		}
		if err := w.addRecursive(full); err != nil {
			continue
		}
	}
	return nil
}

// shouldIgnore reports whether path is hidden or matches an ignore pattern.
func (w *Watcher) shouldIgnore(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") && base != "." {
		return true
	}

	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range w.ignore {
		if match, _ := doublestar.Match(pattern, rel); match {
			return true
		}
	}
	return false
}
