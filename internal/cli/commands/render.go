package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pgpick/pgpick/internal/result"
)

// resolveFormat maps the configured output mode to a concrete plain format.
func resolveFormat(format string) string {
	if format == "" || format == "auto" {
		return "table"
	}
	return format
}

func renderSet(w io.Writer, set *result.Set, format string) error {
	switch resolveFormat(format) {
	case "json":
		return renderJSON(w, set)
	case "csv":
		return renderCSV(w, set)
	case "md", "markdown":
		return renderMarkdown(w, set)
	case "table":
		return renderTable(w, set)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func renderTable(w io.Writer, set *result.Set) error {
	if len(set.Entries) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(set.Headers))
	for i, h := range set.Headers {
		headerRow[i] = h
	}
	t.AppendHeader(headerRow)

	for _, e := range set.Entries {
		row := make(table.Row, len(e.Columns))
		for i, c := range e.Columns {
			row[i] = c
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(set.Entries))
	return nil
}

// renderJSON emits one object per row, keyed by header name. Ragged pairs
// are omitted, matching the detail view's policy.
func renderJSON(w io.Writer, set *result.Set) error {
	rows := make([]map[string]string, 0, len(set.Entries))
	for _, e := range set.Entries {
		n := len(e.Columns)
		if len(e.Headers) < n {
			n = len(e.Headers)
		}
		row := make(map[string]string, n)
		for i := 0; i < n; i++ {
			row[e.Headers[i]] = e.Columns[i]
		}
		rows = append(rows, row)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func renderCSV(w io.Writer, set *result.Set) error {
	cols := make([]string, len(set.Headers))
	for i, h := range set.Headers {
		cols[i] = escapeCSV(h)
	}
	_, _ = fmt.Fprintln(w, strings.Join(cols, ","))

	for _, e := range set.Entries {
		values := make([]string, len(e.Columns))
		for i, c := range e.Columns {
			values[i] = escapeCSV(c)
		}
		_, _ = fmt.Fprintln(w, strings.Join(values, ","))
	}
	return nil
}

func renderMarkdown(w io.Writer, set *result.Set) error {
	if len(set.Entries) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(set.Headers, " | "))
	seps := make([]string, len(set.Headers))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))

	for _, e := range set.Entries {
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(e.Columns, " | "))
	}
	return nil
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
