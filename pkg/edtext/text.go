package edtext

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// Text is an immutable string-like value supporting ed-style line selection.
// Lines keep their terminators; a final line without a trailing newline is
// kept as-is.
type Text struct {
	text  string
	lines []string
}

// New creates a Text from a string.
func New(text string) *Text {
	return &Text{text: text, lines: splitLines(text)}
}

// FromLines creates a Text from pre-split lines. The lines are expected to
// carry their terminators, as produced by Lines.
func FromLines(lines []string) *Text {
	return &Text{text: strings.Join(lines, ""), lines: slices.Clone(lines)}
}

// chomp strips a single trailing line terminator.
func chomp(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// splitLines splits after each newline, keeping the terminator with its line.
func splitLines(s string) []string {
	var lines []string
	for len(s) > 0 {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			lines = append(lines, s)
			break
		}
		lines = append(lines, s[:i+1])
		s = s[i+1:]
	}
	return lines
}

// String returns the full text.
func (t *Text) String() string {
	return t.text
}

// Len returns the number of lines.
func (t *Text) Len() int {
	return len(t.lines)
}

// Lines returns a copy of the lines, terminators included.
func (t *Text) Lines() []string {
	return slices.Clone(t.lines)
}

// resolveAddr resolves an address to a 1-based line number. start is the
// 1-based current line, except 0 which means "from the beginning". Regex
// addresses scan forward from the line after the current one.
func (t *Text) resolveAddr(a Addr, start int) (int, error) {
	switch a.Kind {
	case AddrNumber:
		return a.Number + a.Delta, nil
	case AddrRegex:
		re, err := regexp.Compile(a.Regex)
		if err != nil {
			return 0, fmt.Errorf("invalid pattern /%s/: %w", a.Regex, err)
		}
		for i := start; i < len(t.lines); i++ {
			// Match against the line without its terminator so that $
			// anchors to the visible end of the line.
			if re.MatchString(chomp(t.lines[i])) {
				return i + 1 + a.Delta, nil
			}
		}
		return 0, fmt.Errorf("pattern not found: /%s/", a.Regex)
	case AddrLast:
		return len(t.lines) + a.Delta, nil
	default:
		if start == 0 {
			start = 1
		}
		return start + a.Delta, nil
	}
}

// LineNumbers resolves one or more range expressions to 1-based line
// numbers, concatenated in request order. The current line starts at 0 and
// after each expression becomes that expression's end line, so later
// expressions and ";" ranges resolve relative to earlier ones.
func (t *Text) LineNumbers(exprs ...string) ([]int, error) {
	var numbers []int
	start := 0
	for _, expr := range exprs {
		r, err := ParseRange(expr)
		if err != nil {
			return nil, err
		}
		startIdx, err := t.resolveAddr(r.Start, start)
		if err != nil {
			return nil, err
		}
		endIdx := startIdx
		if r.End != nil {
			if r.From0 {
				start = 1
			} else {
				start = startIdx
			}
			if r.End.IsRelative() && r.From0 {
				return nil, fmt.Errorf("invalid range: %q", expr)
			}
			endIdx, err = t.resolveAddr(*r.End, start)
			if err != nil {
				return nil, err
			}
		}
		if startIdx > endIdx {
			return nil, fmt.Errorf("invalid range: start %d > end %d", startIdx, endIdx)
		}
		for n := startIdx; n <= endIdx; n++ {
			numbers = append(numbers, n)
		}
		start = endIdx
	}
	return numbers, nil
}

// Select returns a new Text holding the lines selected by the given range
// expressions. A resolved line outside the text is an error.
func (t *Text) Select(exprs ...string) (*Text, error) {
	numbers, err := t.LineNumbers(exprs...)
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(numbers))
	for _, n := range numbers {
		if n < 1 || n > len(t.lines) {
			return nil, fmt.Errorf("line %d out of range (text has %d lines)", n, len(t.lines))
		}
		lines = append(lines, t.lines[n-1])
	}
	return FromLines(lines), nil
}
