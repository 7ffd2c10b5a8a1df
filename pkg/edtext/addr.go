package edtext

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// AddrKind identifies how an address anchors to a line.
type AddrKind int

const (
	// AddrNone is a relative address: it resolves against the current line.
	AddrNone AddrKind = iota
	// AddrNumber is an absolute 1-based line number.
	AddrNumber
	// AddrRegex selects the next line matching a regular expression.
	AddrRegex
	// AddrLast selects the last line ($).
	AddrLast
)

// String returns a short name for the kind.
func (k AddrKind) String() string {
	switch k {
	case AddrNumber:
		return "number"
	case AddrRegex:
		return "regex"
	case AddrLast:
		return "last"
	default:
		return "relative"
	}
}

// Addr is a single ed-style line address: an anchor plus a signed offset.
// The zero value is the relative address with no offset, equivalent to ".".
type Addr struct {
	Kind   AddrKind
	Number int    // 1-based line number when Kind is AddrNumber
	Regex  string // search pattern when Kind is AddrRegex, without slashes
	Delta  int    // signed offset applied after the anchor resolves
}

// Address grammar: an optional anchor (number, /regex/ with the closing
// slash optional at end of input, $, or .) followed by an optional offset,
// written either as a signed integer or as a run of +/- characters.
var addrPattern = regexp.MustCompile(
	`^\s*(?:(?P<number>\d+)|(?P<regex>/[^/]+?(?:/|$))|(?P<last>\$)|\.)?\s*(?:(?P<delta>[+-]?\s*\d+)|(?P<plus>[ +-]+))?`,
)

var (
	numberGroup = addrPattern.SubexpIndex("number")
	regexGroup  = addrPattern.SubexpIndex("regex")
	lastGroup   = addrPattern.SubexpIndex("last")
	deltaGroup  = addrPattern.SubexpIndex("delta")
	plusGroup   = addrPattern.SubexpIndex("plus")
)

// ParseAddr parses a leading address from expr and returns it together with
// the unconsumed remainder. Every input parses: an unrecognized prefix
// yields the zero (relative) address with expr returned untouched. The only
// error is a mixed +/- offset run such as "-+-".
func ParseAddr(expr string) (Addr, string, error) {
	// The pattern can match the empty string, so it always matches.
	idx := addrPattern.FindStringSubmatchIndex(expr)

	group := func(n int) (string, bool) {
		if idx[2*n] < 0 {
			return "", false
		}
		return expr[idx[2*n]:idx[2*n+1]], true
	}

	var addr Addr
	switch {
	case hasGroup(idx, numberGroup):
		num, _ := group(numberGroup)
		n, err := strconv.Atoi(num)
		if err != nil {
			return Addr{}, "", fmt.Errorf("invalid line number in %q: %w", expr, err)
		}
		addr.Kind = AddrNumber
		addr.Number = n
	case hasGroup(idx, regexGroup):
		re, _ := group(regexGroup)
		addr.Kind = AddrRegex
		addr.Regex = strings.Trim(re, "/")
	case hasGroup(idx, lastGroup):
		addr.Kind = AddrLast
	}

	if delta, ok := group(deltaGroup); ok {
		d, err := strconv.Atoi(strings.ReplaceAll(delta, " ", ""))
		if err != nil {
			return Addr{}, "", fmt.Errorf("invalid address delta: %q", expr)
		}
		addr.Delta = d
	} else if plus, ok := group(plusGroup); ok {
		run := strings.ReplaceAll(plus, " ", "")
		if run != "" {
			if strings.Count(run, run[:1]) != len(run) {
				return Addr{}, "", fmt.Errorf("invalid address delta: %q", expr)
			}
			addr.Delta = len(run)
			if run[0] == '-' {
				addr.Delta = -addr.Delta
			}
		}
	}

	return addr, expr[idx[1]:], nil
}

func hasGroup(idx []int, n int) bool {
	return idx[2*n] >= 0
}

// IsRelative reports whether the address has no anchor and resolves against
// the current line.
func (a Addr) IsRelative() bool {
	return a.Kind == AddrNone
}

// Range is one or two addresses selecting a run of lines. With separator ","
// the end address resolves from line 1; with ";" it resolves from the
// resolved start address.
type Range struct {
	Start Addr
	End   *Addr // nil for a single-address range
	From0 bool  // true for "," (and single addresses), false for ";"
}

// ParseRange parses a complete range expression. Anything left over after
// the addresses is an error.
func ParseRange(expr string) (Range, error) {
	start, rest, err := ParseAddr(expr)
	if err != nil {
		return Range{}, err
	}
	r := Range{Start: start, From0: true}
	if rest == "" {
		return r, nil
	}
	if rest[0] != ',' && rest[0] != ';' {
		return Range{}, fmt.Errorf("invalid range: %q", expr)
	}
	r.From0 = rest[0] == ','
	end, rest, err := ParseAddr(rest[1:])
	if err != nil {
		return Range{}, err
	}
	r.End = &end
	if rest != "" {
		return Range{}, fmt.Errorf("invalid range tail: %q", rest)
	}
	return r, nil
}
