package task

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Cleaner removes cache and build artifacts under a project root. Patterns
// are doublestar globs matched against the root-relative tree.
type Cleaner struct {
	Root     string
	Patterns []string
}

// Clean removes everything matching the patterns and returns the
// root-relative paths that were removed (or would be, with dryRun), sorted.
// Nothing matching is a no-op, not an error, so cleaning twice in a row is
// safe.
func (c *Cleaner) Clean(dryRun bool) ([]string, error) {
	fsys := os.DirFS(c.Root)
	seen := make(map[string]bool)
	var removed []string

	for _, pattern := range c.Patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid clean pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if m == "." || seen[m] {
				continue
			}
			seen[m] = true
			if !dryRun {
				if err := os.RemoveAll(filepath.Join(c.Root, m)); err != nil {
					return removed, fmt.Errorf("failed to remove %s: %w", m, err)
				}
			}
			removed = append(removed, m)
		}
	}

	sort.Strings(removed)
	return removed, nil
}
