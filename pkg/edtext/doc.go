// Package edtext implements ed(1)-style line addressing over plain text.
//
// An address selects a single line: an absolute line number, a forward
// regular-expression search (/pattern/), the last line ($), or the current
// line (.), each with an optional signed offset. A range combines one or two
// addresses with "," or ";" and resolves to a run of 1-based line numbers.
// Text values are immutable; selections produce new Text values.
package edtext
