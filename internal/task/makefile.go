package task

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
)

// Target is a documented target extracted from a Makefile.
type Target struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Annotated target lines look like:
//
//	clean: ## Remove build artifacts
var targetPattern = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9_./-]*)\s*:[^#]*##\s*(.*)$`)

// ParseTargets scans makefile text for annotated targets and returns them
// sorted alphabetically by name. A target annotated more than once keeps its
// first description.
func ParseTargets(r io.Reader) ([]Target, error) {
	var targets []Target
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		m := targetPattern.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		targets = append(targets, Target{Name: m[1], Description: m[2]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan makefile: %w", err)
	}

	sort.Slice(targets, func(i, j int) bool { return targets[i].Name < targets[j].Name })
	return targets, nil
}

// ParseTargetsFile reads annotated targets from a Makefile on disk.
func ParseTargetsFile(path string) ([]Target, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open makefile: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseTargets(f)
}
