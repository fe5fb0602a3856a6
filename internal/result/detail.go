package result

import (
	"bytes"
	"encoding/json"
	"strings"
)

// jsonIndent matches psql conventions poorly but humans well.
const jsonIndent = "  "

// RenderDetail renders one entry as a line-per-field document. Each column
// value is paired positionally with its header name; pairs missing either
// side are omitted. Values that look like JSON (first non-space byte is '{'
// or '[') are re-serialized with two-space indentation under the bare header
// name, each line indented two further spaces. Anything else, including
// values that fail to parse as JSON, renders as "header: value".
func RenderDetail(e Entry) []string {
	n := len(e.Columns)
	if len(e.Headers) < n {
		n = len(e.Headers)
	}

	var lines []string
	for i := 0; i < n; i++ {
		lines = append(lines, renderField(e.Headers[i], e.Columns[i])...)
	}
	return lines
}

func renderField(header, value string) []string {
	if looksLikeJSON(value) {
		if formatted, ok := indentJSON(value); ok {
			lines := make([]string, 0, len(formatted)+1)
			lines = append(lines, header)
			for _, l := range formatted {
				lines = append(lines, jsonIndent+l)
			}
			return lines
		}
	}
	return []string{header + ": " + value}
}

func looksLikeJSON(value string) bool {
	trimmed := strings.TrimSpace(value)
	return strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")
}

// indentJSON reformats a JSON document with two-space indentation, returning
// its lines. The bool is false when the value is not valid JSON.
func indentJSON(value string) ([]string, bool) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(strings.TrimSpace(value)), "", jsonIndent); err != nil {
		return nil, false
	}
	return strings.Split(buf.String(), "\n"), true
}
