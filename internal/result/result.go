// Package result models the pipe-delimited output of psql's unaligned mode
// and turns selected rows into detail documents.
package result

import "strings"

// Delimiter is the column separator psql emits in unaligned (-A) mode.
const Delimiter = "|"

// Entry is one data row paired with the header it was captured under.
// Columns and Headers are positional; ragged rows are tolerated and the
// pairing simply stops at the shorter side.
type Entry struct {
	Headers []string
	Columns []string
}

// Display returns the human-readable joined form of the row. It doubles as
// the picker's search key.
func (e Entry) Display() string {
	return strings.Join(e.Columns, " | ")
}

// Set holds one parsed result capture: the header row and all data rows.
type Set struct {
	Headers []string
	Entries []Entry
}

// Empty reports whether the capture produced no lines at all. This is the
// "no rows" signal, distinct from an execution failure.
func (s *Set) Empty() bool {
	return s == nil || len(s.Headers) == 0 && len(s.Entries) == 0
}

// Parse interprets captured output lines: the first line is the header row,
// the rest are data rows, all split on the delimiter. Lines are consumed in
// order and nothing is filtered or validated; a row whose column count
// differs from the header's is kept as-is.
func Parse(lines []string) *Set {
	if len(lines) == 0 {
		return &Set{}
	}

	headers := strings.Split(lines[0], Delimiter)
	entries := make([]Entry, 0, len(lines)-1)
	for _, line := range lines[1:] {
		entries = append(entries, Entry{
			Headers: headers,
			Columns: strings.Split(line, Delimiter),
		})
	}

	return &Set{Headers: headers, Entries: entries}
}
